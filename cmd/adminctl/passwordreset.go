package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var passwordResetCmd = &cobra.Command{
	Use:   "password-reset",
	Short: "Reset an admin password via email OTP",
}

var resetRequestCmd = &cobra.Command{
	Use:   "request <email>",
	Short: "Request a reset OTP for the given email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := auth.RequestPasswordReset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if message == "" {
			message = "OTP sent; verify it with `adminctl password-reset verify`"
		}
		fmt.Println(message)
		return nil
	},
}

var resetVerifyCmd = &cobra.Command{
	Use:   "verify <email> <otp>",
	Short: "Verify the OTP received by email",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := auth.VerifyResetOTP(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if message == "" {
			message = "OTP verified; set the new password with `adminctl password-reset complete`"
		}
		fmt.Println(message)
		return nil
	},
}

var resetCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Set the new password for the pending reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		newPassword, err := promptLine("New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptLine("Confirm password: ")
		if err != nil {
			return err
		}
		message, err := auth.CompletePasswordReset(cmd.Context(), newPassword, confirm)
		if err != nil {
			return err
		}
		if message == "" {
			message = "Password changed"
		}
		fmt.Println(message)
		return nil
	},
}

func init() {
	passwordResetCmd.AddCommand(resetRequestCmd)
	passwordResetCmd.AddCommand(resetVerifyCmd)
	passwordResetCmd.AddCommand(resetCompleteCmd)
	rootCmd.AddCommand(passwordResetCmd)
}

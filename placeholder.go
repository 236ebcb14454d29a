package adminctl

// Placeholder dashboard data, used when the summary/graph endpoints return
// nothing. The backend does not have them consistently wired yet, and the
// dashboard should render something meaningful instead of an error page.

var placeholderSummary = RawSummary{
	ActiveUser:       40689,
	ActiveUserChange: "8.5% Up from yesterday",
	TotalBuyers:      10293,
	BuyersChange:     "1.3% Up from yesterday",
	TotalSellers:     2040,
	SellersChange:    "1.8% Up from yesterday",
	TotalEarning:     89000.00,
	EarningChange:    "4.3% Up from yesterday",
}

var placeholderGraph = RawGraphPayload{
	SalesDetails: &RawSeries{
		Labels: []string{
			"1k", "5k", "10k", "15k", "20k", "21k", "25k", "30k", "35k", "40k", "45k", "50k", "55k", "60k",
		},
		Datasets: []RawDataset{
			{
				Label: "Sales",
				Data:  []float64{20, 30, 45, 55, 80, 95, 60, 50, 40, 25, 40, 60, 55, 45},
			},
		},
	},
	Revenue: &RawSeries{
		Labels: []string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		Datasets: []RawDataset{
			{
				Label: "Sales",
				Data:  []float64{70, 80, 65, 75, 85, 70, 78, 88, 70, 75, 68, 80},
			},
			{
				Label: "Profit",
				Data:  []float64{85, 70, 90, 80, 100, 95, 88, 75, 92, 89, 98, 110},
			},
		},
	},
}

package adminctl

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealershipFixtures(ids ...string) []fiber.Map {
	out := make([]fiber.Map, 0, len(ids))
	for _, id := range ids {
		out = append(
			out, fiber.Map{
				"_id":         id,
				"name":        "Dealer " + id,
				"description": "Description " + id,
				"image":       "https://cdn.example.com/" + id + ".jpg",
			},
		)
	}
	return out
}

func dealershipListRoute(app *fiber.App, ids ...string) {
	app.Get(
		"/AutoDealerShip/allAutoDealerShip", func(c *fiber.Ctx) error {
			// The collection sits one level down in the first element's
			// everyThing array; that is the shape the real endpoint uses.
			return respondData(c, []fiber.Map{{"everyThing": dealershipFixtures(ids...)}})
		},
	)
}

func TestDealershipFetchUnwrapsCollection(t *testing.T) {
	client := newTestServer(
		t, nil, func(app *fiber.App) {
			dealershipListRoute(app, "d1", "d2")
		},
	)
	state := NewDealershipState(client)

	require.NoError(t, state.Fetch(context.Background()))
	assert.Equal(t, PhaseLoaded, state.Phase())
	if assert.Len(t, state.Items(), 2) {
		assert.Equal(t, "Dealer d1", state.Items()[0].Name)
	}
	p := state.Pagination()
	assert.Equal(t, 2, p.TotalDocs)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
}

func TestDealershipFetchEmptyPayloadIsFailure(t *testing.T) {
	client := newTestServer(
		t, nil, func(app *fiber.App) {
			app.Get(
				"/AutoDealerShip/allAutoDealerShip", func(c *fiber.Ctx) error {
					return respondData(c, []fiber.Map{})
				},
			)
		},
	)
	state := NewDealershipState(client)

	err := state.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, state.Phase())
	assert.Empty(t, state.Items())
}

func TestDealershipCreateMapsTitleToName(t *testing.T) {
	client := newTestServer(
		t, nil, func(app *fiber.App) {
			app.Post(
				"/AutoDealerShip/addDataInEveryThing", func(c *fiber.Ctx) error {
					assert.Equal(t, "City Motors", c.FormValue("name"))
					assert.Equal(t, "A dealership", c.FormValue("description"))
					assert.Empty(t, c.FormValue("title"), "the form's title field maps onto name")
					return respondData(c, nil)
				},
			)
		},
	)
	state := NewDealershipState(client)

	err := state.Create(
		context.Background(), DealershipDraft{Title: "City Motors", Description: "A dealership"},
	)
	require.NoError(t, err)
	assert.Equal(t, MutationSucceeded, state.Mutation())
}

func TestDealershipDeleteChecksMessage(t *testing.T) {
	t.Run(
		"success message", func(t *testing.T) {
			client := newTestServer(
				t, nil, func(app *fiber.App) {
					dealershipListRoute(app, "d1", "d2")
					app.Delete(
						"/AutoDealerShip/deleteAutoDealerShip/:id", func(c *fiber.Ctx) error {
							return c.JSON(fiber.Map{"status": 200, "message": "Deleted Successfully"})
						},
					)
				},
			)
			state := NewDealershipState(client)
			ctx := context.Background()
			require.NoError(t, state.Fetch(ctx))

			require.NoError(t, state.Delete(ctx, "d1"))
			if assert.Len(t, state.Items(), 1) {
				assert.Equal(t, "d2", state.Items()[0].ID)
			}
			assert.Equal(t, 1, state.Pagination().TotalDocs)
		},
	)

	t.Run(
		"200 without the success message is a failure", func(t *testing.T) {
			client := newTestServer(
				t, nil, func(app *fiber.App) {
					dealershipListRoute(app, "d1")
					app.Delete(
						"/AutoDealerShip/deleteAutoDealerShip/:id", func(c *fiber.Ctx) error {
							return c.JSON(fiber.Map{"status": 200, "message": "Something went wrong"})
						},
					)
				},
			)
			state := NewDealershipState(client)
			ctx := context.Background()
			require.NoError(t, state.Fetch(ctx))

			err := state.Delete(ctx, "d1")
			require.Error(t, err)
			assert.Equal(t, "Something went wrong", ErrorMessage(err))
			assert.Len(t, state.Items(), 1, "a rejected delete must leave the cache alone")
		},
	)
}

func TestDealershipDeleteMultipleIsSequential(t *testing.T) {
	var inFlight, maxInFlight atomic.Int64
	client := newTestServer(
		t, nil, func(app *fiber.App) {
			dealershipListRoute(app, "d1", "d2", "d3")
			app.Delete(
				"/AutoDealerShip/deleteAutoDealerShip/:id", func(c *fiber.Ctx) error {
					n := inFlight.Add(1)
					defer inFlight.Add(-1)
					for {
						m := maxInFlight.Load()
						if n <= m || maxInFlight.CompareAndSwap(m, n) {
							break
						}
					}
					return c.JSON(fiber.Map{"status": 200, "message": "Deleted Successfully"})
				},
			)
		},
	)
	state := NewDealershipState(client)
	ctx := context.Background()
	require.NoError(t, state.Fetch(ctx))
	state.ToggleSelectAll(true)

	result, err := state.DeleteSelected(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d1", "d2", "d3"}, result.Succeeded)
	assert.Empty(t, state.Items())
	assert.LessOrEqual(t, maxInFlight.Load(), int64(1), "dealership deletion runs one request at a time")
}

func TestDealershipFormSeed(t *testing.T) {
	state := NewDealershipState(nil)
	assert.Equal(t, DealershipDraft{}, state.FormSeed())

	target := Dealership{ID: "d1", Name: "City Motors", Description: "A dealership"}
	state.OpenModal(&target)
	seed := state.FormSeed()
	assert.Equal(t, "City Motors", seed.Title)
	assert.Equal(t, "A dealership", seed.Description)
}

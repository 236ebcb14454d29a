package adminctl

import (
	"context"
	"encoding/json"
	"strings"

	arrays "github.com/adam-hanna/arrayOperations"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/motormarket/adminctl/internal/utils"
)

// Dealership is an auto-dealership listing on the marketplace.
type Dealership struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// EntityID implements Entity
func (d Dealership) EntityID() string { return d.ID }

// DealershipDraft carries the add form fields. The form's title maps onto
// the API's `name` field.
type DealershipDraft struct {
	Title       string
	Description string
	ImageURL    string
	Image       *ImageFile
}

type dealershipForm struct {
	Title       string `form:"name"`
	Description string `form:"description"`
}

// dealershipWrapper is the odd nesting the list endpoint uses: the full
// collection sits one level down in the first element's everyThing array.
type dealershipWrapper struct {
	EveryThing []Dealership `json:"everyThing"`
}

// fetchDealerships returns the full collection; the endpoint has no
// server-side pagination.
func (c *Client) fetchDealerships(ctx context.Context) ([]Dealership, error) {
	env, err := c.get(ctx, pathDealershipList, nil)
	if err != nil {
		return nil, err
	}
	var wrappers []dealershipWrapper
	if len(env.Data) > 0 {
		if err = json.Unmarshal(env.Data, &wrappers); err != nil {
			return nil, errors.Wrap(err, "decoding dealership collection")
		}
	}
	if len(wrappers) == 0 {
		return nil, errors.New("no AutoDealerShip data found")
	}
	return wrappers[0].EveryThing, nil
}

func (c *Client) createDealership(ctx context.Context, draft DealershipDraft) error {
	fields := utils.FormFields(dealershipForm{Title: draft.Title, Description: draft.Description})
	_, err := c.postMultipart(ctx, pathDealershipCreate, fields, draft.Image)
	return err
}

// deleteDealership treats the request as successful only when the response
// message says so; the endpoint does not use the status field consistently.
func (c *Client) deleteDealership(ctx context.Context, id string) error {
	env, err := c.delete(ctx, pathDealershipDelete+id)
	if err != nil {
		return err
	}
	if !strings.Contains(env.Message, "Deleted Successfully") {
		msg := env.Message
		if msg == "" {
			msg = "failed to delete dealership"
		}
		return &ServerError{HTTPStatus: 200, Status: env.Status, Message: msg}
	}
	return nil
}

// DealershipState is the state machine owning the dealership collection's
// client-side cache, selection, and CRUD lifecycle. The collection is
// unpaginated server-side; the pagination fields are populated nominally
// (page 1, one page, full set size as TotalDocs) so the list contract stays
// uniform with articles.
type DealershipState struct {
	listCore[Dealership]
	client *Client
}

// NewDealershipState creates a DealershipState.
func NewDealershipState(client *Client) *DealershipState {
	return &DealershipState{
		listCore: newListCore[Dealership](defaultPageLimit),
		client:   client,
	}
}

// Fetch loads the full collection. On success the cache is replaced
// wholesale and the selection cleared; on failure the list is reset to an
// empty, zeroed state.
func (s *DealershipState) Fetch(ctx context.Context) error {
	s.beginFetch()
	docs, err := s.client.fetchDealerships(ctx)
	if err != nil {
		s.applyFetchError(ErrorMessage(err))
		return err
	}
	s.applyFetch(
		docs, Pagination{
			TotalDocs:  len(docs),
			Limit:      defaultPageLimit,
			Page:       1,
			TotalPages: 1,
		},
	)
	return nil
}

// Create submits the add form as multipart form data. On success the modal
// closes; re-fetch to observe the new listing.
func (s *DealershipState) Create(ctx context.Context, draft DealershipDraft) error {
	s.beginMutation()
	if err := s.client.createDealership(ctx, draft); err != nil {
		s.applyMutationError(ErrorMessage(err))
		return err
	}
	s.applyMutationSuccess()
	return nil
}

// Delete removes a single dealership and splices it out of the cache and
// the selection.
func (s *DealershipState) Delete(ctx context.Context, id string) error {
	s.beginMutation()
	if err := s.client.deleteDealership(ctx, id); err != nil {
		s.applyMutationError(ErrorMessage(err))
		return err
	}
	s.applyDeleted([]string{id})
	return nil
}

// DeleteMultiple deletes the given dealerships one request at a time (the
// endpoint has no batch form and the collection is small). Failure
// semantics match the article fan-out: only a fully failed batch is an
// error.
func (s *DealershipState) DeleteMultiple(ctx context.Context, ids []string) (BatchResult, error) {
	ids = arrays.Intersect(ids, s.loadedIDs())
	if len(ids) == 0 {
		return BatchResult{}, nil
	}
	s.beginMutation()
	result := fanOut(ctx, ids, 1, s.client.deleteDealership)
	if result.AllFailed() {
		err := errors.New("failed to delete any selected dealerships")
		s.applyMutationError(err.Error())
		return result, err
	}
	if result.Partial() {
		failed := make([]string, 0, len(result.Failed))
		for _, f := range result.Failed {
			failed = append(failed, f.ID)
		}
		log.WithField("failed_ids", failed).Warn("partially deleted dealerships")
	}
	s.applyDeleted(result.Succeeded)
	return result, nil
}

// DeleteSelected runs DeleteMultiple over the current multi-select set.
func (s *DealershipState) DeleteSelected(ctx context.Context) (BatchResult, error) {
	return s.DeleteMultiple(ctx, s.SelectedIDs())
}

// FormSeed returns the draft presented when the modal opens.
func (s *DealershipState) FormSeed() DealershipDraft {
	selected := s.SelectedEntity()
	if selected == nil {
		return DealershipDraft{}
	}
	return DealershipDraft{
		Title:       selected.Name,
		Description: selected.Description,
		ImageURL:    selected.Image,
	}
}

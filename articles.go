package adminctl

import (
	"context"
	"encoding/json"
	"strconv"

	arrays "github.com/adam-hanna/arrayOperations"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/motormarket/adminctl/internal/utils"
)

const defaultPageLimit = 10

// Article is a marketplace news/blog article managed by the admin console.
// The server owns the collection; the client only caches one page at a time.
type Article struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

// EntityID implements Entity
func (a Article) EntityID() string { return a.ID }

// ArticleFilter narrows an article listing.
type ArticleFilter struct {
	Search   string
	FromDate string
	ToDate   string
}

// ArticleDraft carries the add/edit form fields. ImageURL is a read-only
// preview of the existing image in edit mode; Image is a new upload.
type ArticleDraft struct {
	Title       string
	Description string
	ImageURL    string
	Image       *ImageFile
}

type articleForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type articlePage struct {
	Docs       []Article `json:"docs"`
	TotalDocs  int       `json:"totalDocs"`
	Limit      int       `json:"limit"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

func (c *Client) fetchArticles(ctx context.Context, page, limit int, filter ArticleFilter) (*articlePage, error) {
	env, err := c.get(
		ctx, pathArticleList, map[string]string{
			"search":   filter.Search,
			"fromDate": filter.FromDate,
			"toDate":   filter.ToDate,
			"page":     strconv.Itoa(page),
			"limit":    strconv.Itoa(limit),
		},
	)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, errors.New("unexpected response structure for articles")
	}
	var p articlePage
	if err = json.Unmarshal(env.Data, &p); err != nil {
		return nil, errors.Wrap(err, "decoding article page")
	}
	return &p, nil
}

func (c *Client) createArticle(ctx context.Context, draft ArticleDraft) error {
	fields := utils.FormFields(articleForm{Title: draft.Title, Description: draft.Description})
	_, err := c.postMultipart(ctx, pathArticleCreate, fields, draft.Image)
	return err
}

// updateArticle sends only the text fields; the API's update contract does
// not take an image.
func (c *Client) updateArticle(ctx context.Context, id, title, description string) error {
	_, err := c.putJSON(
		ctx, pathArticleUpdate+id, map[string]string{
			"title":       title,
			"description": description,
		},
	)
	return err
}

func (c *Client) deleteArticle(ctx context.Context, id string) error {
	_, err := c.delete(ctx, pathArticleDelete+id)
	return err
}

// ArticleState is the state machine owning the article collection's
// client-side cache, pagination, selection, and CRUD lifecycle.
type ArticleState struct {
	listCore[Article]
	client *Client

	// bulkConcurrency bounds the per-id fan-out of DeleteSelected.
	bulkConcurrency int
}

// NewArticleState creates an ArticleState. bulkConcurrency <= 1 makes bulk
// deletion sequential.
func NewArticleState(client *Client, bulkConcurrency int) *ArticleState {
	return &ArticleState{
		listCore:        newListCore[Article](defaultPageLimit),
		client:          client,
		bulkConcurrency: bulkConcurrency,
	}
}

// Fetch loads one page of articles. Out-of-bounds pages are a no-op. On
// success the cached page and pagination are replaced wholesale and the
// selection is cleared; on failure the list is reset to an empty, zeroed
// state.
func (s *ArticleState) Fetch(ctx context.Context, page, limit int, filter ArticleFilter) error {
	if !s.pageInBounds(page) {
		return nil
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	s.beginFetch()
	p, err := s.client.fetchArticles(ctx, page, limit, filter)
	if err != nil {
		s.applyFetchError(ErrorMessage(err))
		return err
	}
	s.applyFetch(
		p.Docs, Pagination{
			TotalDocs:  p.TotalDocs,
			Limit:      p.Limit,
			Page:       p.Page,
			TotalPages: p.TotalPages,
		},
	)
	return nil
}

// Create submits the add form, as multipart form data when an image is
// attached. On success the modal closes; the new article is not spliced into
// the cached page — re-fetch to observe it.
func (s *ArticleState) Create(ctx context.Context, draft ArticleDraft) error {
	s.beginMutation()
	if err := s.client.createArticle(ctx, draft); err != nil {
		s.applyMutationError(ErrorMessage(err))
		return err
	}
	s.applyMutationSuccess()
	return nil
}

// Update changes an article's text fields. Image replacement is not part of
// the update contract.
func (s *ArticleState) Update(ctx context.Context, id, title, description string) error {
	s.beginMutation()
	if err := s.client.updateArticle(ctx, id, title, description); err != nil {
		s.applyMutationError(ErrorMessage(err))
		return err
	}
	s.applyMutationSuccess()
	return nil
}

// Delete removes a single article. On success the article is spliced out of
// the cached page and the selection without a re-fetch, and TotalDocs drops
// by one, floored at zero.
func (s *ArticleState) Delete(ctx context.Context, id string) error {
	s.beginMutation()
	if err := s.client.deleteArticle(ctx, id); err != nil {
		s.applyMutationError(ErrorMessage(err))
		return err
	}
	s.applyDeleted([]string{id})
	return nil
}

// DeleteMultiple deletes the given articles with concurrent per-id requests
// (there is no batch endpoint). The operation only fails when every single
// deletion failed; a partial outcome is logged as a warning and resolves
// with the succeeded subset applied to the cached page.
func (s *ArticleState) DeleteMultiple(ctx context.Context, ids []string) (BatchResult, error) {
	// Selection is scoped to the loaded page; ignore ids that are not
	// currently cached.
	ids = arrays.Intersect(ids, s.loadedIDs())
	if len(ids) == 0 {
		return BatchResult{}, nil
	}
	s.beginMutation()
	result := fanOut(ctx, ids, s.bulkConcurrency, s.client.deleteArticle)
	if result.AllFailed() {
		err := errors.New("failed to delete any selected articles")
		s.applyMutationError(err.Error())
		return result, err
	}
	if result.Partial() {
		failed := make([]string, 0, len(result.Failed))
		for _, f := range result.Failed {
			failed = append(failed, f.ID)
		}
		log.WithField("failed_ids", failed).Warn("partially deleted articles")
	}
	s.applyDeleted(result.Succeeded)
	return result, nil
}

// DeleteSelected runs DeleteMultiple over the current multi-select set.
func (s *ArticleState) DeleteSelected(ctx context.Context) (BatchResult, error) {
	return s.DeleteMultiple(ctx, s.SelectedIDs())
}

// FormSeed returns the draft presented when the modal opens: the selected
// article's current values in edit mode, empty fields in create mode.
func (s *ArticleState) FormSeed() ArticleDraft {
	selected := s.SelectedEntity()
	if selected == nil {
		return ArticleDraft{}
	}
	return ArticleDraft{
		Title:       selected.Title,
		Description: selected.Description,
		ImageURL:    selected.Image,
	}
}

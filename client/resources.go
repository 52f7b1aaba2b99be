package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// resource translates a query chain into the one HTTP call its table
// supports. The backend exposes purpose-built endpoints rather than a
// generic table API, so each table's filter vocabulary is fixed here.
type resource interface {
	execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error)
}

func unsupported(table, verb string) error {
	return fmt.Errorf("client: table %q does not support %s", table, verb)
}

var success = json.RawMessage("null")

// notFoundAsEmpty converts a 404 into an empty row set so that select
// chains keep their rows-not-errors semantics and Single maps the
// absence onto ErrNoRows.
func notFoundAsEmpty(raw json.RawMessage, err error) (json.RawMessage, error) {
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return json.RawMessage("[]"), nil
		}
		return nil, err
	}
	return raw, nil
}

// linkRow is one row of a many-to-many join table as the caller stages it.
type linkRow struct {
	PostID     uint `json:"post_id"`
	CategoryID uint `json:"category_id,omitempty"`
	TagID      uint `json:"tag_id,omitempty"`
}

func decodeLinkRows(payload interface{}) ([]linkRow, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var rows []linkRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		// a single row object is accepted too
		var row linkRow
		if err2 := json.Unmarshal(raw, &row); err2 != nil {
			return nil, err
		}
		rows = []linkRow{row}
	}
	return rows, nil
}

// ---- posts ----

type postsResource struct{}

func (postsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		// an id equality collapses to the single-post endpoint, which also
		// resolves slugs
		if id, ok := q.findEq("id"); ok {
			raw, err := notFoundAsEmpty(c.do(ctx, http.MethodGet, "/api/posts/"+formatValue(id), nil, nil))
			if err != nil {
				return nil, err
			}
			if string(raw) == "[]" {
				return raw, nil
			}
			return dataField(raw)
		}
		raw, err := c.do(ctx, http.MethodGet, "/api/posts", q.selectParams(), nil)
		if err != nil {
			return nil, err
		}
		return dataField(raw)

	case actionInsert, actionUpsert:
		raw, err := c.do(ctx, http.MethodPost, "/api/posts", nil, q.payload)
		if err != nil {
			return nil, err
		}
		return dataField(raw)

	case actionDelete:
		id, ok := q.findEq("id")
		if !ok {
			return nil, errors.New("client: posts delete requires Eq(\"id\", ...)")
		}
		if _, err := c.do(ctx, http.MethodDelete, "/api/posts/"+formatValue(id), nil, nil); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "this action")
}

// ---- categories ----

type categoriesResource struct{}

func (categoriesResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		raw, err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil)
		if err != nil {
			return nil, err
		}
		return dataField(raw)

	case actionInsert, actionUpsert:
		if _, err := c.do(ctx, http.MethodPost, "/api/categories", nil, q.payload); err != nil {
			return nil, err
		}
		return success, nil

	case actionDelete:
		id, ok := q.findEq("id")
		if !ok {
			return nil, errors.New("client: categories delete requires Eq(\"id\", ...)")
		}
		if _, err := c.do(ctx, http.MethodDelete, "/api/categories/"+formatValue(id), nil, nil); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "this action")
}

// ---- tags ----

type tagsResource struct{}

func (tagsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionInsert, actionUpsert:
		raw, err := c.do(ctx, http.MethodPost, "/api/tags/upsert", nil, q.payload)
		if err != nil {
			return nil, err
		}
		return dataField(raw)
	case actionSelect:
		return nil, unsupported(q.table, "select; tags are read through their posts")
	}
	return nil, unsupported(q.table, "delete")
}

// ---- post_categories ----

type postCategoriesResource struct{}

func (postCategoriesResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		categoryID, ok := q.findEq("category_id")
		if !ok {
			return nil, errors.New("client: post_categories select requires Eq(\"category_id\", ...)")
		}
		params := url.Values{"category_id": []string{formatValue(categoryID)}}
		raw, err := c.do(ctx, http.MethodGet, "/api/post_categories", params, nil)
		if err != nil {
			return nil, err
		}
		return dataField(raw)

	case actionInsert, actionUpsert:
		rows, err := decodeLinkRows(q.payload)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return success, nil
		}
		body := map[string]interface{}{
			"post_id":      rows[0].PostID,
			"category_ids": collectCategoryIDs(rows),
		}
		if _, err := c.do(ctx, http.MethodPost, "/api/post_categories/bulk", nil, body); err != nil {
			return nil, err
		}
		return success, nil

	case actionDelete:
		// clearing a post's links is a replacement with the empty set
		postID, ok := q.findEq("post_id")
		if !ok {
			return nil, errors.New("client: post_categories delete requires Eq(\"post_id\", ...)")
		}
		body := map[string]interface{}{"post_id": postID, "category_ids": []uint{}}
		if _, err := c.do(ctx, http.MethodPost, "/api/post_categories/bulk", nil, body); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "this action")
}

func collectCategoryIDs(rows []linkRow) []uint {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CategoryID)
	}
	return ids
}

// ---- post_tags ----

type postTagsResource struct{}

func (postTagsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		tagIDs, ok := q.findIn("tag_id")
		if !ok {
			return nil, errors.New("client: post_tags select requires In(\"tag_id\", ...)")
		}
		params := url.Values{"tag_ids": []string{joinValues(tagIDs)}}
		if exclude, ok := q.findNeq("post_id"); ok {
			params.Set("exclude_post_id", formatValue(exclude))
		}
		if q.limit != nil {
			params.Set("limit", fmt.Sprintf("%d", *q.limit))
		}
		raw, err := c.do(ctx, http.MethodGet, "/api/post_tags/by_tags", params, nil)
		if err != nil {
			return nil, err
		}
		return dataField(raw)

	case actionInsert, actionUpsert:
		rows, err := decodeLinkRows(q.payload)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return success, nil
		}
		body := map[string]interface{}{
			"post_id": rows[0].PostID,
			"tag_ids": collectTagIDs(rows),
		}
		if _, err := c.do(ctx, http.MethodPost, "/api/post_tags/bulk", nil, body); err != nil {
			return nil, err
		}
		return success, nil

	case actionDelete:
		postID, ok := q.findEq("post_id")
		if !ok {
			return nil, errors.New("client: post_tags delete requires Eq(\"post_id\", ...)")
		}
		body := map[string]interface{}{"post_id": postID, "tag_ids": []uint{}}
		if _, err := c.do(ctx, http.MethodPost, "/api/post_tags/bulk", nil, body); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "this action")
}

func collectTagIDs(rows []linkRow) []uint {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.TagID)
	}
	return ids
}

// ---- comments ----

type commentsResource struct{}

func (commentsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		params := url.Values{}
		if postID, ok := q.findEq("post_id"); ok {
			params.Set("post_id", formatValue(postID))
		}
		raw, err := c.do(ctx, http.MethodGet, "/api/comments", params, nil)
		if err != nil {
			return nil, err
		}
		data, err := dataField(raw)
		if err != nil {
			return nil, err
		}
		return sliceRows(data, q.offset, q.limit)

	case actionInsert, actionUpsert:
		if _, err := c.do(ctx, http.MethodPost, "/api/comments", nil, q.payload); err != nil {
			return nil, err
		}
		return success, nil

	case actionDelete:
		id, ok := q.findEq("id")
		if !ok {
			return nil, errors.New("client: comments delete requires Eq(\"id\", ...)")
		}
		if _, err := c.do(ctx, http.MethodDelete, "/api/comments/"+formatValue(id), nil, nil); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "this action")
}

// sliceRows applies an offset/limit window to an already-fetched row set.
func sliceRows(data json.RawMessage, offset, limit *int) (json.RawMessage, error) {
	if offset == nil && limit == nil {
		return data, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	start := 0
	if offset != nil && *offset > 0 {
		start = *offset
	}
	if start > len(rows) {
		start = len(rows)
	}
	end := len(rows)
	if limit != nil && *limit >= 0 && start+*limit < end {
		end = start + *limit
	}
	out, err := json.Marshal(rows[start:end])
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ---- settings ----

type settingsResource struct{}

func (settingsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	switch q.action {
	case actionSelect:
		raw, err := c.do(ctx, http.MethodGet, "/api/settings", nil, nil)
		if err != nil {
			return nil, err
		}
		data, err := dataField(raw)
		if err != nil {
			return nil, err
		}
		if key, ok := q.findEq("key"); ok {
			return filterSettingsByKey(data, formatValue(key))
		}
		return data, nil

	case actionInsert, actionUpsert:
		body, err := ensureArray(q.payload)
		if err != nil {
			return nil, err
		}
		if _, err := c.do(ctx, http.MethodPost, "/api/settings", nil, body); err != nil {
			return nil, err
		}
		return success, nil
	}
	return nil, unsupported(q.table, "delete")
}

func filterSettingsByKey(data json.RawMessage, key string) (json.RawMessage, error) {
	var entries []struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	matched := make([]interface{}, 0, 1)
	for _, entry := range entries {
		if entry.Key == key {
			matched = append(matched, map[string]interface{}{
				"key":   entry.Key,
				"value": entry.Value,
			})
		}
	}
	out, err := json.Marshal(matched)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ensureArray wraps a bare object payload into a one-element array, which is
// the shape the settings endpoint expects for uniform handling.
func ensureArray(payload interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	trimmed := trimLeadingSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return raw, nil
	}
	return json.RawMessage("[" + string(raw) + "]"), nil
}

// ---- post_views ----

// viewRow mirrors the nested post_views entry posts carry.
type viewRow struct {
	PostID    uint `json:"post_id"`
	ViewCount int  `json:"view_count"`
}

type postViewsResource struct{}

// post_views is a read-only projection of the posts payload; counters move
// through the increment_post_view procedure.
func (postViewsResource) execute(ctx context.Context, c *Client, q *Query) (json.RawMessage, error) {
	if q.action != actionSelect {
		return nil, unsupported(q.table, "mutation; use RPC(\"increment_post_view\")")
	}

	type postWithViews struct {
		ID        uint `json:"id"`
		PostViews []struct {
			ViewCount int `json:"view_count"`
		} `json:"post_views"`
	}

	var posts []postWithViews
	if postID, ok := q.findEq("post_id"); ok {
		raw, err := notFoundAsEmpty(c.do(ctx, http.MethodGet, "/api/posts/"+formatValue(postID), nil, nil))
		if err != nil {
			return nil, err
		}
		if string(raw) != "[]" {
			data, err := dataField(raw)
			if err != nil {
				return nil, err
			}
			var one postWithViews
			if err := json.Unmarshal(data, &one); err != nil {
				return nil, err
			}
			posts = []postWithViews{one}
		}
	} else {
		raw, err := c.do(ctx, http.MethodGet, "/api/posts", q.selectParams(), nil)
		if err != nil {
			return nil, err
		}
		data, err := dataField(raw)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &posts); err != nil {
			return nil, err
		}
	}

	rows := make([]viewRow, 0, len(posts))
	for _, p := range posts {
		count := 0
		if len(p.PostViews) > 0 {
			count = p.PostViews[0].ViewCount
		}
		rows = append(rows, viewRow{PostID: p.ID, ViewCount: count})
	}
	out, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	return out, nil
}

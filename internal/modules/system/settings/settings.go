package settings

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/nooblk-98/DevOps-Blog/internal/models"
	"github.com/nooblk-98/DevOps-Blog/internal/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingEntry is one key/value pair on the wire. Value is arbitrary JSON.
type settingEntry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/settings", h.list)
	rg.POST("/settings", authMW, h.upsert)
}

// list GET /settings — values are decoded from their stored JSON form;
// a value that never was valid JSON comes back as the raw string.
func (h *Handler) list(c *gin.Context) {
	var rows []models.SettingModel
	if err := h.db.Find(&rows).Error; err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]gin.H, len(rows))
	for i, row := range rows {
		var value interface{}
		if json.Valid([]byte(row.Value)) {
			value = json.RawMessage(row.Value)
		} else {
			value = row.Value
		}
		items[i] = gin.H{"key": row.Key, "value": value}
	}
	response.Data(c, items)
}

// upsert POST /settings  [auth] — accepts either an array of {key,value}
// entries or an object map; each key is upserted independently. The value's
// JSON encoding is stored verbatim so reads round-trip exactly.
func (h *Handler) upsert(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, err := decodeEntries(body)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	for _, entry := range entries {
		if entry.Key == "" {
			response.BadRequest(c, "setting key is required")
			return
		}
		row := models.SettingModel{Key: entry.Key, Value: string(entry.Value)}
		if err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&row).Error; err != nil {
			response.InternalError(c, err)
			return
		}
	}
	response.Success(c)
}

func decodeEntries(body json.RawMessage) ([]settingEntry, error) {
	var entries []settingEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(body, &asMap); err != nil {
		return nil, err
	}
	entries = make([]settingEntry, 0, len(asMap))
	for key, value := range asMap {
		entries = append(entries, settingEntry{Key: key, Value: value})
	}
	return entries, nil
}

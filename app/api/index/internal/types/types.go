package types

import "encoding/json"

type PageRequest struct {
	Limit  int64 `form:"limit,optional"`
	Offset int64 `form:"offset,optional"`
}

type SearchProductsRequest struct {
	Query string `form:"q,optional"`
	PageRequest
}

type SearchProductsResponse struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}

type GetProductRequest struct {
	ProductId int64 `path:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type Product struct {
	ProductId   int64  `json:"product_id"`
	Title       string `json:"title"`
	ImageLogo   string `json:"image_logo"`
	ProductType string `json:"product_type"`
	CompSystems string `json:"comp_systems"`
	SaleRank    int64  `json:"sale_rank"`
}

type ListProductChangelogRequest struct {
	ProductId int64 `path:"id"`
	PageRequest
}

type ListChangelogRequest struct {
	PageRequest
}

type ListChangelogResponse struct {
	Entries []ChangelogEntry `json:"entries"`
}

type ChangelogEntry struct {
	ProductId    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Timestamp    float64         `json:"timestamp"`
	Action       string          `json:"action"`
	Category     string          `json:"category"`
	DlType       string          `json:"dl_type,omitempty"`
	BonusType    string          `json:"bonus_type,omitempty"`
	PropertyName string          `json:"property_name,omitempty"`
	Record       json.RawMessage `json:"record"`
}

type ListSummariesRequest struct {
	PageRequest
}

type ListSummariesResponse struct {
	Summaries []ChangelogSummary `json:"summaries"`
}

type ChangelogSummary struct {
	ProductId    int64    `json:"product_id"`
	ProductTitle string   `json:"product_title"`
	Timestamp    float64  `json:"timestamp"`
	Categories   []string `json:"categories"`
}

type RebuildIndexResponse struct {
	TaskId string `json:"task_id"`
	Queue  string `json:"queue"`
}

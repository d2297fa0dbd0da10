// Package jobsvc - Stage Text Extraction: đọc file tài liệu đã tải và gọi extractor.
package jobsvc

import (
	"context"
	"os"

	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	jobmodels "case_harvest/internal/api/jobs/models"
	"case_harvest/internal/common"
	"case_harvest/internal/extractor"
	"case_harvest/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// ExtractStage trích xuất văn bản cho các order đã có tài liệu.
type ExtractStage struct {
	orderService    *courtsvc.CourtOrderService
	extractorClient *extractor.Client
}

// NewExtractStage tạo ExtractStage mới.
func NewExtractStage() (*ExtractStage, error) {
	orderService, err := courtsvc.NewCourtOrderService()
	if err != nil {
		return nil, err
	}
	return &ExtractStage{
		orderService:    orderService,
		extractorClient: extractor.NewClient(global.ServerConfig),
	}, nil
}

// Kind trả về loại job của stage.
func (st *ExtractStage) Kind() string { return jobmodels.JobKindExtract }

// CollectItems gom các order đã fetch nhưng chưa trích xuất văn bản.
func (st *ExtractStage) CollectItems(ctx context.Context) ([]StageItem, error) {
	orders, err := st.orderService.Find(ctx, bson.M{
		"documentFetched": true,
		"textExtracted":   false,
	}, nil)
	if err != nil {
		return nil, err
	}
	items := make([]StageItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, o)
	}
	return items, nil
}

// ProcessItem đọc tài liệu từ document store, gọi extractor rồi lưu văn bản.
func (st *ExtractStage) ProcessItem(ctx context.Context, item StageItem) error {
	order, ok := item.(courtmodels.CourtOrder)
	if !ok {
		return common.ErrInvalidInput
	}

	document, err := os.ReadFile(order.DocumentLocation)
	if err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "không đọc được file tài liệu: "+err.Error())
		return err
	}

	text, err := st.extractorClient.Extract(ctx, document)
	if err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "trích xuất văn bản thất bại: "+err.Error())
		return err
	}

	return st.orderService.MarkExtracted(ctx, order.ID, text)
}

// Package jobsvc - Stage Document Fetch: tải tài liệu lệnh qua fetch proxy.
package jobsvc

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	jobmodels "case_harvest/internal/api/jobs/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"
	"case_harvest/internal/proxy"
	"case_harvest/internal/utility"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// pdfMagic 4 byte đầu của một file PDF thật — kiểm tra nội dung, không tin content type.
var pdfMagic = []byte("%PDF")

// FetchStage tải tài liệu cho các OrderRequest chưa fetch.
type FetchStage struct {
	orderService   *courtsvc.CourtOrderService
	proxyClient    *proxy.Client
	allowedDomains []string
	storeDir       string
}

// NewFetchStage tạo FetchStage mới.
func NewFetchStage() (*FetchStage, error) {
	orderService, err := courtsvc.NewCourtOrderService()
	if err != nil {
		return nil, err
	}
	return &FetchStage{
		orderService:   orderService,
		proxyClient:    proxy.NewClient(global.ServerConfig),
		allowedDomains: global.ServerConfig.AllowedDomainList(),
		storeDir:       global.ServerConfig.DocumentStoreDir,
	}, nil
}

// Kind trả về loại job của stage.
func (st *FetchStage) Kind() string { return jobmodels.JobKindFetch }

// CollectItems gom các order chưa tải tài liệu.
func (st *FetchStage) CollectItems(ctx context.Context) ([]StageItem, error) {
	orders, err := st.orderService.Find(ctx, bson.M{"documentFetched": false}, nil)
	if err != nil {
		return nil, err
	}
	items := make([]StageItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, o)
	}
	return items, nil
}

// ProcessItem tải tài liệu cho một order:
//  1. Host của fetch URL phải nằm trong allowlist — vi phạm là lỗi bảo mật,
//     log và fail luôn, không retry.
//  2. Tải qua proxy; lỗi transient (mạng/proxy) được retry đúng một lần.
//  3. Nội dung phải mở đầu bằng magic bytes PDF — sai là fail, không retry.
//  4. Lưu file (key ngẫu nhiên) và set documentFetched.
func (st *FetchStage) ProcessItem(ctx context.Context, item StageItem) error {
	order, ok := item.(courtmodels.CourtOrder)
	if !ok {
		return common.ErrInvalidInput
	}

	log := logger.GetPipelineLogger()

	parsed, err := url.Parse(order.FetchURL)
	if err != nil || !utility.Contains(st.allowedDomains, parsed.Hostname()) {
		log.WithFields(map[string]interface{}{
			"orderId":  order.ID.Hex(),
			"fetchUrl": order.FetchURL,
		}).Error("📥 [FETCH] Host không nằm trong allowlist, từ chối tải")
		st.orderService.MarkItemFailure(ctx, order.ID, "host không nằm trong allowlist")
		return common.NewError(common.ErrCodeValidation,
			"Host của fetch URL không nằm trong allowlist", common.StatusBadRequest, nil)
	}

	// Một lần retry cho lỗi transient, không retry vô hạn
	body, err := st.proxyClient.Fetch(ctx, order.FetchURL)
	if err != nil {
		body, err = st.proxyClient.Fetch(ctx, order.FetchURL)
	}
	if err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "tải qua proxy thất bại: "+err.Error())
		return err
	}

	if !bytes.HasPrefix(body, pdfMagic) {
		log.WithFields(map[string]interface{}{
			"orderId": order.ID.Hex(),
			"size":    len(body),
		}).Warn("📥 [FETCH] Nội dung không phải PDF (magic bytes sai)")
		st.orderService.MarkItemFailure(ctx, order.ID, "nội dung không phải PDF")
		return common.NewError(common.ErrCodeValidationDocument,
			"Nội dung tải về không phải tài liệu PDF", common.StatusBadRequest, nil)
	}

	if err := os.MkdirAll(st.storeDir, 0o755); err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "không tạo được thư mục lưu trữ")
		return err
	}
	location := filepath.Join(st.storeDir, fmt.Sprintf("%s.pdf", uuid.NewString()))
	if err := os.WriteFile(location, body, 0o644); err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "không ghi được file tài liệu")
		return err
	}

	return st.orderService.MarkFetched(ctx, order.ID, location, int64(len(body)))
}

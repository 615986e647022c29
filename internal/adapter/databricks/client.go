package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Temutjin2k/taxi-fare-dashboard/config"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/metrics"
)

const (
	StateSucceeded = "SUCCEEDED"

	onWaitTimeoutCancel = "CANCEL"
	formatJSONArray     = "JSON_ARRAY"
	dispositionInline   = "INLINE"

	maxErrorBody = 4096
)

// Client executes SQL statements on a Databricks SQL warehouse through the
// statement execution API. Every call is a single blocking POST.
type Client struct {
	url         string
	token       string
	warehouseID string
	waitTimeout string
	http        *http.Client
}

func New(cfg config.DatabricksConfig) *Client {
	return &Client{
		url:         cfg.StatementURL(),
		token:       cfg.Token,
		warehouseID: cfg.WarehouseID,
		waitTimeout: cfg.WaitTimeout,
		http:        &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type statementRequest struct {
	Statement     string `json:"statement"`
	WarehouseID   string `json:"warehouse_id"`
	WaitTimeout   string `json:"wait_timeout"`
	OnWaitTimeout string `json:"on_wait_timeout"`
	Format        string `json:"format"`
	Disposition   string `json:"disposition"`
}

type apiError struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

type statementResponse struct {
	StatementID string `json:"statement_id"`
	Status      struct {
		State string    `json:"state"`
		Error *apiError `json:"error"`
	} `json:"status"`
	Manifest *struct {
		Schema struct {
			ColumnCount int `json:"column_count"`
			Columns     []struct {
				Name     string `json:"name"`
				TypeName string `json:"type_name"`
				Position int    `json:"position"`
			} `json:"columns"`
		} `json:"schema"`
		TotalRowCount int64 `json:"total_row_count"`
		Truncated     bool  `json:"truncated"`
	} `json:"manifest"`
	Result *struct {
		RowCount  int64           `json:"row_count"`
		DataArray []models.RawRow `json:"data_array"`
	} `json:"result"`
}

// Result is the inline result of a finished statement.
type Result struct {
	StatementID string
	ColumnCount int // from the manifest, 0 when the service sent none
	Columns     []string
	Rows        []models.RawRow
	Truncated   bool
}

// Execute runs a statement and waits for it inline. A statement that has not
// finished within the wait timeout is cancelled by the warehouse.
func (c *Client) Execute(ctx context.Context, statement string) (res *Result, err error) {
	const op = "Client.Execute"
	ctx = wrap.WithAction(ctx, types.ActionStatementExecuted)

	start := time.Now()
	defer func() {
		metrics.RecordStatement(err, time.Since(start))
	}()

	body, err := json.Marshal(statementRequest{
		Statement:     statement,
		WarehouseID:   c.warehouseID,
		WaitTimeout:   c.waitTimeout,
		OnWaitTimeout: onWaitTimeoutCancel,
		Format:        formatJSONArray,
		Disposition:   dispositionInline,
	})
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: failed to encode statement: %w", op, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: failed to build request: %w", op, err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrQueryService, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: unexpected response status %d: %s", op, types.ErrQueryService, resp.StatusCode, readAPIError(resp.Body)))
	}

	var payload statementResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		ctx = wrap.WithAction(ctx, "decode_statement_response")
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrMalformedResponse, err))
	}
	ctx = wrap.WithStatementID(ctx, payload.StatementID)

	if payload.Status.State != StateSucceeded {
		msg := "no error details"
		if payload.Status.Error != nil {
			msg = payload.Status.Error.Message
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: state %s: %s", op, types.ErrStatementFailed, payload.Status.State, msg))
	}

	return payload.toResult(), nil
}

func (p *statementResponse) toResult() *Result {
	res := &Result{
		StatementID: p.StatementID,
		Rows:        []models.RawRow{},
	}
	if p.Manifest != nil {
		res.Truncated = p.Manifest.Truncated
		res.ColumnCount = p.Manifest.Schema.ColumnCount
		for _, col := range p.Manifest.Schema.Columns {
			res.Columns = append(res.Columns, col.Name)
		}
		if res.ColumnCount == 0 {
			res.ColumnCount = len(res.Columns)
		}
	}
	if p.Result != nil && p.Result.DataArray != nil {
		res.Rows = p.Result.DataArray
	}
	return res
}

func readAPIError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return "empty body"
	}

	var e apiError
	if json.Unmarshal(b, &e) == nil && e.Message != "" {
		return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
	}
	return string(b)
}

package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/usecase/dashboard"
	"github.com/BruksfildServices01/crm-manager/internal/usecase/report"
)

func (c *Client) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var out dashboard.Stats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecentClients(ctx context.Context, limit int) ([]models.Client, error) {
	return getList[models.Client](ctx, c, "/api/dashboard/recent-clients", query("limit", itoa(limit)))
}

func (c *Client) MonthlyRevenue(ctx context.Context, months int) ([]dashboard.MonthlyRevenue, error) {
	return getList[dashboard.MonthlyRevenue](ctx, c, "/api/dashboard/monthly-revenue", query("months", itoa(months)))
}

// Performance loads the metrics of a month; zero values mean the current one.
func (c *Client) Performance(ctx context.Context, year int, month time.Month) ([]dashboard.Metric, error) {
	return getList[dashboard.Metric](ctx, c, "/api/dashboard/performance",
		query("year", itoa(year), "month", itoa(int(month))))
}

func (c *Client) Distributions(ctx context.Context) (*report.Distributions, error) {
	var out report.Distributions
	if err := c.do(ctx, http.MethodGet, "/api/reports/distributions", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Export struct {
	Filename   string
	Content    []byte
	ArchiveURL string
}

func (c *Client) Export(ctx context.Context, entity string, archive bool) (*Export, error) {
	q := query()
	if archive {
		q.Set("archive", "true")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/export/"+entity, q, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &Export{
		Filename:   fmt.Sprintf("%s_%s.csv", entity, time.Now().Format("2006-01-02")),
		Content:    content,
		ArchiveURL: resp.Header.Get("X-Archive-URL"),
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		out.Filename = params["filename"]
	}
	return out, nil
}

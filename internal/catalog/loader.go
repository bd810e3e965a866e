package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rnitealiii/EliteMart/pkg/config"
	pkgerrors "github.com/rnitealiii/EliteMart/pkg/errors"
	"github.com/rnitealiii/EliteMart/pkg/logger"
	"github.com/rnitealiii/EliteMart/pkg/metrics"
)

// Loader fetches the product catalog from its static resource. It runs exactly
// once at startup; there is no retry policy, and a failed load leaves the
// catalog empty until the application is restarted.
type Loader struct {
	client  *http.Client
	url     string
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewLoader builds a catalog loader from configuration.
func NewLoader(cfg config.CatalogConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Loader, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("catalog url required")
	}
	return &Loader{
		client:  &http.Client{Timeout: cfg.Timeout},
		url:     cfg.URL,
		logg:    logg,
		metrics: m,
	}, nil
}

// Load fetches and decodes the catalog. Failures carry one of the load error
// codes: NETWORK_FAILURE, HTTP_STATUS or MALFORMED_PAYLOAD.
func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	products, err := l.fetch(ctx)
	if err != nil {
		l.metrics.IncCatalogLoad("failure")
		l.logg.Error(ctx, "catalog load failed", err)
		return nil, err
	}
	l.metrics.IncCatalogLoad("success")
	l.logg.Info(l.logg.WithField(ctx, "products", len(products)), "catalog loaded")
	return products, nil
}

func (l *Loader) fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "build catalog request")
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "fetch catalog")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, pkgerrors.New(pkgerrors.CodeHTTPStatus, fmt.Sprintf("catalog request returned status %d", resp.StatusCode))
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedPayload, err, "decode catalog")
	}
	for _, product := range products {
		if product.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeMalformedPayload, fmt.Sprintf("product %d has negative price", product.ID))
		}
	}
	return products, nil
}

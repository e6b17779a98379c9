package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Cheertaboi/storefront-service/internal/models"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

const binLength = 6

type BINConfig struct {
	URL     string        `envconfig:"BIN_LOOKUP_URL" default:"https://lookup.binlist.net"`
	Timeout time.Duration `envconfig:"BIN_LOOKUP_TIMEOUT" default:"3s"`
}

// BINLookup resolves the issuing bank of a card from its first six digits
// against a binlist-compatible API. It is advisory: every failure is reported
// as "no information".
type BINLookup struct {
	baseURL string
	client  *http.Client
}

func NewBINLookup(cfg BINConfig) *BINLookup {
	return &BINLookup{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type binResponse struct {
	Scheme  string `json:"scheme"`
	Type    string `json:"type"`
	Prepaid *bool  `json:"prepaid"`
	Bank    struct {
		Name string `json:"name"`
	} `json:"bank"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// Lookup returns nil when the number is too short, the lookup is disabled or
// the remote call fails in any way.
func (l *BINLookup) Lookup(ctx context.Context, cardNumber string) *models.BankInfo {
	if l == nil || l.baseURL == "" {
		return nil
	}
	d := digitsOnly(cardNumber)
	if len(d) < binLength {
		return nil
	}
	bin := d[:binLength]

	info, err := l.fetch(ctx, bin)
	if err != nil {
		logx.Debug().Err(err).Str("bin", bin).Msg("bin lookup unavailable")
		return nil
	}
	return info
}

func (l *BINLookup) fetch(ctx context.Context, bin string) (*models.BankInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+bin, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Version", "3")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bin lookup status %d", resp.StatusCode)
	}

	var body binResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode bin response: %w", err)
	}

	return &models.BankInfo{
		Brand:   orUnknown(strings.ToUpper(body.Scheme)),
		Type:    orUnknown(body.Type),
		Bank:    orUnknown(body.Bank.Name),
		Country: orUnknown(body.Country.Name),
		Prepaid: body.Prepaid,
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return BrandUnknown
	}
	return s
}

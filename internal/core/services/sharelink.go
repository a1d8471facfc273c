package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure ShareService implements the interface.
var _ driving.ShareService = (*ShareService)(nil)

// ShareParam is the query parameter carrying the encoded portfolio.
const ShareParam = "data"

// ShareService encodes the portfolio into links and loads it back.
type ShareService struct {
	builder  driving.BuilderService
	settings driving.SettingsService
	now      func() time.Time
}

// NewShareService creates a share service. settings may be nil, in which
// case the default base URL is used.
func NewShareService(builder driving.BuilderService, settings driving.SettingsService) *ShareService {
	return &ShareService{
		builder:  builder,
		settings: settings,
		now:      time.Now,
	}
}

// Link returns the share link for the current state.
func (s *ShareService) Link(_ context.Context) (string, error) {
	portfolio := domain.NewPersistedPortfolio(s.builder.State(), s.now())
	return EncodeShareLink(s.baseURL(), portfolio)
}

// Load replaces state from a share link or bare payload. On failure the
// state is left unchanged.
func (s *ShareService) Load(ctx context.Context, link string) error {
	portfolio, err := DecodeShareLink(link)
	if err != nil {
		return err
	}
	if err := s.builder.Replace(ctx, portfolio.State(), "", domain.LabelLoadShared); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidShareLink, err)
	}
	logger.Debug("loaded shared portfolio (%d sections)", len(portfolio.Sections))
	return nil
}

// Decode parses a share link or bare payload without touching state.
func (s *ShareService) Decode(link string) (*domain.PersistedPortfolio, error) {
	return DecodeShareLink(link)
}

func (s *ShareService) baseURL() string {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Share.BaseURL != "" {
			return settings.Share.BaseURL
		}
	}
	return domain.DefaultAppSettings().Share.BaseURL
}

// EncodeShareLink serialises portfolio to JSON, base64-encodes it and sets
// it as the data query parameter of baseURL.
func EncodeShareLink(baseURL string, portfolio domain.PersistedPortfolio) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base url %q: %v", domain.ErrInvalidInput, baseURL, err)
	}
	payload, err := EncodeSharePayload(portfolio)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(ShareParam, payload)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// EncodeSharePayload returns the base64 payload for portfolio.
func EncodeSharePayload(portfolio domain.PersistedPortfolio) (string, error) {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return "", fmt.Errorf("encoding portfolio: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeShareLink accepts a full link, a query string ("?data=...") or a bare
// payload and returns the portfolio it carries.
func DecodeShareLink(link string) (*domain.PersistedPortfolio, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, fmt.Errorf("%w: empty link", domain.ErrInvalidShareLink)
	}

	payload := link
	if strings.Contains(link, "?") || strings.HasPrefix(link, ShareParam+"=") {
		raw := link
		if i := strings.Index(raw, "?"); i >= 0 {
			raw = raw[i+1:]
		}
		if i := strings.Index(raw, "#"); i >= 0 {
			raw = raw[:i]
		}
		q, err := url.ParseQuery(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareLink, err)
		}
		// An unescaped "+" in a pasted link arrives as a space.
		payload = strings.ReplaceAll(q.Get(ShareParam), " ", "+")
		if payload == "" {
			return nil, fmt.Errorf("%w: no %s parameter", domain.ErrInvalidShareLink, ShareParam)
		}
	}
	return DecodeSharePayload(payload)
}

// DecodeSharePayload decodes a base64 payload into a portfolio.
func DecodeSharePayload(payload string) (*domain.PersistedPortfolio, error) {
	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareLink, err)
	}

	var portfolio domain.PersistedPortfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidShareLink, err)
	}
	if portfolio.Sections == nil {
		portfolio.Sections = []domain.Section{}
	}
	return &portfolio, nil
}

// decodeBase64 tries standard encoding first, then the unpadded and
// URL-safe variants some clients produce.
func decodeBase64(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

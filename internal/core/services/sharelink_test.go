package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func samplePortfolio(t *testing.T) domain.PersistedPortfolio {
	t.Helper()
	about := domain.NewSection("about", domain.SectionAbout)
	about.Content["text"] = "Héllo wörld & friends ✨"
	projects := domain.NewSection("projects", domain.SectionProjects)
	projects.Order = 1
	projects.Content["projects"] = []any{map[string]any{"title": "Folio", "description": "x", "tags": []any{"go"}}}

	state, err := prepareState(domain.State{
		Sections:      []domain.Section{about, projects},
		Customization: domain.DefaultCustomization(),
	})
	require.NoError(t, err)
	return domain.NewPersistedPortfolio(state, newTestClock().Now())
}

func TestShareLink_RoundTrip(t *testing.T) {
	want := samplePortfolio(t)

	link, err := EncodeShareLink("https://folio.example/view", want)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "folio.example", u.Host)
	assert.NotEmpty(t, u.Query().Get(ShareParam))

	got, err := DecodeShareLink(link)
	require.NoError(t, err)
	if diff := cmp.Diff(want, *got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestShareLink_PayloadIsStandardBase64JSON(t *testing.T) {
	p := samplePortfolio(t)

	payload, err := EncodeSharePayload(p)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "1.0", decoded["version"])
	assert.Contains(t, decoded, "sections")
	assert.Contains(t, decoded, "customization")
	assert.Contains(t, decoded, "timestamp")
}

func TestDecodeShareLink_AcceptedForms(t *testing.T) {
	p := samplePortfolio(t)
	payload, err := EncodeSharePayload(p)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)

	forms := map[string]string{
		"bare payload":      payload,
		"query string":      "?data=" + url.QueryEscape(payload),
		"data param":        "data=" + url.QueryEscape(payload),
		"unescaped plus":    "https://x.example/?data=" + payload,
		"with fragment":     "https://x.example/?data=" + url.QueryEscape(payload) + "#top",
		"unpadded":          base64.RawStdEncoding.EncodeToString(raw),
		"url-safe":          base64.URLEncoding.EncodeToString(raw),
		"surrounding blank": "  " + payload + "\n",
	}
	for name, link := range forms {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeShareLink(link)
			require.NoError(t, err)
			assert.Len(t, got.Sections, 2)
		})
	}
}

func TestDecodeShareLink_Invalid(t *testing.T) {
	notJSON := base64.StdEncoding.EncodeToString([]byte("not json"))
	tests := map[string]string{
		"empty":       "",
		"garbage":     "%%%not-base64%%%",
		"not json":    notJSON,
		"missing key": "https://x.example/?other=1",
	}
	for name, link := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeShareLink(link)
			require.ErrorIs(t, err, domain.ErrInvalidShareLink)
		})
	}
}

func TestDecodeShareLink_MissingSections(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{"version":"1.0"}`))

	got, err := DecodeShareLink(payload)
	require.NoError(t, err)
	assert.NotNil(t, got.Sections)
	assert.Empty(t, got.Sections)
}

func TestShareService_LinkAndLoad(t *testing.T) {
	f := newBuilderFixture(t)
	ctx := context.Background()
	f.add(t, domain.SectionHero)
	f.add(t, domain.SectionAbout)
	want := f.builder.State()

	store := memory.NewConfigStore()
	require.NoError(t, store.Set("share.base_url", "https://share.example/p"))
	share := NewShareService(f.builder, NewSettingsService(store))

	link, err := share.Link(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://share.example/p?data="), link)

	require.NoError(t, f.builder.ClearTemplate(ctx))
	require.Empty(t, f.builder.Sections())

	require.NoError(t, share.Load(ctx, link))
	requireSameState(t, want, f.builder.State())
	h := f.builder.History()
	assert.Equal(t, domain.LabelLoadShared, h.Entries[h.Cursor].Action)
}

func TestShareService_LoadFailureLeavesState(t *testing.T) {
	f := newBuilderFixture(t)
	f.add(t, domain.SectionHero)
	before := f.builder.State()
	entries := len(f.builder.History().Entries)
	share := NewShareService(f.builder, nil)

	err := share.Load(context.Background(), "definitely not a link")
	require.ErrorIs(t, err, domain.ErrInvalidShareLink)

	requireSameState(t, before, f.builder.State())
	assert.Len(t, f.builder.History().Entries, entries)
}

func TestShareService_DefaultBaseURL(t *testing.T) {
	f := newBuilderFixture(t)
	share := NewShareService(f.builder, nil)

	link, err := share.Link(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, domain.DefaultAppSettings().Share.BaseURL+"?data="), link)

	decoded, err := share.Decode(link)
	require.NoError(t, err)
	assert.Empty(t, decoded.Sections)
}

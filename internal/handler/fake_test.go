package handler

import (
	"context"
	"sort"

	"prevently/internal/docstore"
	"prevently/internal/model"
	"prevently/internal/repository"
	"prevently/internal/service"
	"prevently/pkg/identity"

	"github.com/gin-gonic/gin"
)

// fakeArticles backs the real news service so handler tests exercise
// pagination end to end.
type fakeArticles struct {
	articles []model.Article
	err      error
}

func (f *fakeArticles) FindByDomain(ctx context.Context, domain string, from, to *int64) ([]model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Article
	for _, a := range f.sorted() {
		if a.Domain != domain {
			continue
		}
		if from != nil && a.Timestamp < *from {
			continue
		}
		if to != nil && a.Timestamp > *to {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeArticles) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeArticles) sorted() []model.Article {
	out := append([]model.Article(nil), f.articles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

type fakeAnalytics struct {
	series     []service.DailySentiment
	err        error
	lastDays   int
	lastDomain string
}

func (f *fakeAnalytics) Daily(ctx context.Context, days int, domain string) ([]service.DailySentiment, error) {
	f.lastDays, f.lastDomain = days, domain
	return f.series, f.err
}

type fakeChat struct {
	reply string
	err   error
	last  service.ChatRequest
}

func (f *fakeChat) Reply(ctx context.Context, req service.ChatRequest) (string, error) {
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	if req.Message == "" {
		return "", service.ErrEmptyMessage
	}
	return f.reply, nil
}

type fakeDomains struct {
	domains []model.Domain
	err     error
}

func (f *fakeDomains) GetAllDomains(ctx context.Context) ([]model.Domain, error) {
	return f.domains, f.err
}

func (f *fakeDomains) Ping(ctx context.Context) error {
	return f.err
}

type fakeIdentity struct {
	signUp       *identity.AuthResponse
	signIn       *identity.AuthResponse
	google       *identity.AuthResponse
	user         *identity.User
	tokens       *identity.TokenResponse
	err          error
	verifyErr    error
	signInEmail  string
	verifyTokens []string
	googleURI    string
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password string) (*identity.AuthResponse, error) {
	return f.signUp, f.err
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*identity.AuthResponse, error) {
	f.signInEmail = email
	return f.signIn, f.err
}

func (f *fakeIdentity) SignInWithGoogle(ctx context.Context, googleIDToken, requestURI string) (*identity.AuthResponse, error) {
	f.googleURI = requestURI
	return f.google, f.err
}

func (f *fakeIdentity) SendPasswordReset(ctx context.Context, email string) error {
	return f.err
}

func (f *fakeIdentity) SendEmailVerification(ctx context.Context, idToken string) error {
	f.verifyTokens = append(f.verifyTokens, idToken)
	return f.verifyErr
}

func (f *fakeIdentity) ConfirmEmailVerification(ctx context.Context, oobCode string) (*identity.User, error) {
	return f.user, f.err
}

func (f *fakeIdentity) Lookup(ctx context.Context, idToken string) (*identity.User, error) {
	return f.user, f.err
}

func (f *fakeIdentity) Refresh(ctx context.Context, refreshToken string) (*identity.TokenResponse, error) {
	return f.tokens, f.err
}

type fakeUsers struct {
	records map[string]model.UsernameRecord
	err     error
	saved   []model.UsernameRecord
	linked  map[string]string
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*model.UsernameRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[username]
	if !ok {
		return nil, repository.ErrUsernameNotFound
	}
	return &rec, nil
}

func (f *fakeUsers) Exists(ctx context.Context, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.records[username]
	return ok, nil
}

func (f *fakeUsers) SaveUsername(ctx context.Context, rec model.UsernameRecord) error {
	f.saved = append(f.saved, rec)
	return f.err
}

func (f *fakeUsers) SetProfilePicture(ctx context.Context, username, imageID string) error {
	if f.linked == nil {
		f.linked = map[string]string{}
	}
	f.linked[username] = imageID
	return f.err
}

type fakeRevoker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevoker) Revoke(ctx context.Context, refreshToken string) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[refreshToken] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, refreshToken string) (bool, error) {
	return f.revoked[refreshToken], f.err
}

type fakeImages struct {
	images map[string]model.Image
	err    error
}

func (f *fakeImages) SaveImage(ctx context.Context, img model.Image) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.images == nil {
		f.images = map[string]model.Image{}
	}
	f.images[img.ID] = img
	return len(repository.SplitChunks(img.Data, repository.ChunkSize)), nil
}

func (f *fakeImages) GetImage(ctx context.Context, id string) (*model.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	img, ok := f.images[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &img, nil
}

type testDeps struct {
	articles  *fakeArticles
	analytics *fakeAnalytics
	chat      *fakeChat
	domains   *fakeDomains
	identity  *fakeIdentity
	users     *fakeUsers
	revoker   *fakeRevoker
	images    *fakeImages
}

func newTestDeps() *testDeps {
	return &testDeps{
		articles:  &fakeArticles{},
		analytics: &fakeAnalytics{},
		chat:      &fakeChat{},
		domains:   &fakeDomains{},
		identity:  &fakeIdentity{},
		users:     &fakeUsers{records: map[string]model.UsernameRecord{}},
		revoker:   &fakeRevoker{},
		images:    &fakeImages{},
	}
}

func newTestRouter(d *testDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Handlers{
		News:      NewNewsHandler(service.NewNewsService(d.articles)),
		Analytics: NewAnalyticsHandler(d.analytics),
		Chat:      NewChatHandler(d.chat),
		Domains:   NewDomainHandler(d.domains),
		Auth:      NewAuthHandler(d.identity, d.users, d.revoker, "http://localhost:3000"),
		Images:    NewImageHandler(d.images, d.users),
	}, "")
}

package http

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"linkstash/internal/bootstrap"
	"linkstash/internal/config"
	"linkstash/internal/model"
	"linkstash/internal/repository"
	"linkstash/internal/session"
)

type testEnv struct {
	server    *httptest.Server
	db        *gorm.DB
	stashRepo *repository.StashRepository
}

func newTestEnv(t *testing.T, llmBaseURL string) *testEnv {
	t.Helper()

	dsn := "file:http_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Stash{}))

	cfg := &config.Config{
		App: config.AppConfig{
			Name:          "linkstash",
			Env:           "test",
			GinMode:       "test",
			TemplatesGlob: "../../../web/templates/*.html",
		},
		LLM: config.LLMConfig{
			BaseURL: llmBaseURL,
			APIKey:  "test-key",
			Model:   "gemini-test",
		},
		Fetch: config.FetchConfig{TimeoutSeconds: 2},
		Session: config.SessionConfig{
			Store:      "memory",
			CookieName: "linkstash_session",
			TTLHours:   1,
		},
	}

	app := &bootstrap.App{
		Config:    cfg,
		DB:        db,
		Sessions:  session.NewMemoryStore(),
		StartedAt: time.Now(),
	}

	server := httptest.NewServer(NewRouter(app))
	t.Cleanup(server.Close)

	return &testEnv{
		server:    server,
		db:        db,
		stashRepo: repository.NewStashRepository(db),
	}
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func getPage(t *testing.T, client *http.Client, target string) string {
	t.Helper()
	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func fakeGemini(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + reply + `}]}}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoginStashDeleteScenario(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Example domain content.</p></body></html>"))
	}))
	t.Cleanup(page.Close)

	llm := fakeGemini(t, `"{\"summary\":\"A test site.\",\"tags\":\"test,example\"}"`)
	env := newTestEnv(t, llm.URL)
	alice := newBrowser(t)

	// Login lands on the dashboard.
	body := postForm(t, alice, env.server.URL+"/login", url.Values{"user_name": {"alice"}})
	assert.Contains(t, body, "Hi, alice")
	assert.Contains(t, body, "Nothing stashed yet")

	// Stashing runs the full pipeline against the fake page and fake
	// Gemini, then shows the new row.
	body = postForm(t, alice, env.server.URL+"/stash_url", url.Values{"url_link": {page.URL}})
	assert.Contains(t, body, "URL Stashed and Summarized!")
	assert.Contains(t, body, "A test site.")
	assert.Contains(t, body, "test,example")
	assert.Contains(t, body, page.URL)

	// The flash renders once.
	body = getPage(t, alice, env.server.URL+"/dashboard")
	assert.NotContains(t, body, "URL Stashed and Summarized!")
	assert.Contains(t, body, "A test site.")

	stashes, err := env.stashRepo.ListByUserID(currentUserID(t, env, "alice"))
	require.NoError(t, err)
	require.Len(t, stashes, 1)

	// A different user's session can delete by id; there is no ownership
	// check.
	bob := newBrowser(t)
	_ = postForm(t, bob, env.server.URL+"/login", url.Values{"user_name": {"bob"}})
	body = postForm(t, bob, env.server.URL+"/delete_stash/"+stashes[0].URLID, nil)
	assert.Contains(t, body, "Stash deleted.")

	body = getPage(t, alice, env.server.URL+"/dashboard")
	assert.Contains(t, body, "Nothing stashed yet")
}

func currentUserID(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	var user model.User
	require.NoError(t, env.db.Where("user_name = ?", name).First(&user).Error)
	return user.UserID
}

func TestStashUnreachableURLSavesSentinels(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	_ = postForm(t, client, env.server.URL+"/login", url.Values{"user_name": {"alice"}})

	// Nothing listens on this port.
	body := postForm(t, client, env.server.URL+"/stash_url", url.Values{"url_link": {"http://127.0.0.1:1/"}})
	assert.Contains(t, body, "URL Stashed and Summarized!")
	assert.Contains(t, body, "Could not access this URL (Privacy or Security restriction).")
	assert.Contains(t, body, "error")
}

func TestStashWithBrokenAIReplySavesSentinels(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Example domain content.</p></body></html>"))
	}))
	t.Cleanup(page.Close)

	llm := fakeGemini(t, `"this is not json"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	_ = postForm(t, client, env.server.URL+"/login", url.Values{"user_name": {"alice"}})
	body := postForm(t, client, env.server.URL+"/stash_url", url.Values{"url_link": {page.URL}})
	assert.Contains(t, body, "AI generation failed.")
	assert.Contains(t, body, "ai-error")
}

func TestAnonymousRequestsBounceToEntry(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	body := getPage(t, client, env.server.URL+"/dashboard")
	assert.Contains(t, body, "Enter your name")

	body = postForm(t, client, env.server.URL+"/stash_url", url.Values{"url_link": {"https://example.com"}})
	assert.Contains(t, body, "Enter your name")
}

func TestLoginRejectsBlankName(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	body := postForm(t, client, env.server.URL+"/login", url.Values{"user_name": {"   "}})
	assert.Contains(t, body, "Please enter a valid name.")

	// Still anonymous.
	body = getPage(t, client, env.server.URL+"/dashboard")
	assert.Contains(t, body, "Enter your name")
}

func TestEmptyURLShowsWarning(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	_ = postForm(t, client, env.server.URL+"/login", url.Values{"user_name": {"alice"}})
	body := postForm(t, client, env.server.URL+"/stash_url", url.Values{"url_link": {""}})
	assert.Contains(t, body, "Please enter a URL.")
}

func TestLogoutClearsSession(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)
	client := newBrowser(t)

	_ = postForm(t, client, env.server.URL+"/login", url.Values{"user_name": {"alice"}})
	body := getPage(t, client, env.server.URL+"/logout")
	assert.Contains(t, body, "Enter your name")

	body = getPage(t, client, env.server.URL+"/dashboard")
	assert.Contains(t, body, "Enter your name")
}

func TestHealthz(t *testing.T) {
	llm := fakeGemini(t, `"unused"`)
	env := newTestEnv(t, llm.URL)

	resp, err := http.Get(env.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

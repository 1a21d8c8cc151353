package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/pinboard/internal/middleware"
	"github.com/thereayou/pinboard/internal/models"
	"github.com/thereayou/pinboard/internal/storage"
	"github.com/thereayou/pinboard/pkg/auth"
)

var errNotFound = errors.New("record not found")

// fakeUserStore — in-memory реализация services.UserStore
type fakeUserStore struct {
	users   map[string]*models.User
	follows map[string]bool // follower|target
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   map[string]*models.User{},
		follows: map[string]bool{},
	}
}

func (s *fakeUserStore) SaveUser(u *models.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.users[u.ID.String()] = &cp
	return nil
}

func (s *fakeUserStore) UpdateUser(u *models.User) error {
	if _, ok := s.users[u.ID.String()]; !ok {
		return errNotFound
	}
	cp := *u
	s.users[u.ID.String()] = &cp
	return nil
}

func (s *fakeUserStore) GetUser(id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetUserWithRelations(id string) (*models.User, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	for key := range s.follows {
		parts := strings.SplitN(key, "|", 2)
		if parts[1] == id {
			if f, ok := s.users[parts[0]]; ok {
				u.Followers = append(u.Followers, *f)
			}
		}
		if parts[0] == id {
			if f, ok := s.users[parts[1]]; ok {
				u.Following = append(u.Following, *f)
			}
		}
	}
	return u, nil
}

func (s *fakeUserStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeUserStore) IsFollowing(followerID, targetID string) (bool, error) {
	return s.follows[followerID+"|"+targetID], nil
}

func (s *fakeUserStore) FollowUser(follower, target *models.User) error {
	s.follows[follower.ID.String()+"|"+target.ID.String()] = true
	return nil
}

func (s *fakeUserStore) UnfollowUser(follower, target *models.User) error {
	delete(s.follows, follower.ID.String()+"|"+target.ID.String())
	return nil
}

// fakePinStore — in-memory реализация services.PinStore
type fakePinStore struct {
	users       *fakeUserStore
	pins        map[string]*models.Pin
	comments    map[string]*models.Comment
	pinComments map[string][]string // порядок добавления
	saved       map[string]bool     // user|pin
}

func newFakePinStore(users *fakeUserStore) *fakePinStore {
	return &fakePinStore{
		users:       users,
		pins:        map[string]*models.Pin{},
		comments:    map[string]*models.Comment{},
		pinComments: map[string][]string{},
		saved:       map[string]bool{},
	}
}

func (s *fakePinStore) clonePin(p *models.Pin, withOwner bool) *models.Pin {
	cp := *p
	cp.Comments = nil
	ids := s.pinComments[p.ID.String()]
	for i := len(ids) - 1; i >= 0; i-- {
		cp.Comments = append(cp.Comments, *s.comments[ids[i]])
	}
	if withOwner && s.users != nil {
		if owner, ok := s.users.users[p.OwnerID.String()]; ok {
			cp.Owner = *owner
		}
	}
	return &cp
}

func (s *fakePinStore) CreatePin(pin *models.Pin) error {
	if pin.ID == uuid.Nil {
		pin.ID = uuid.New()
	}
	cp := *pin
	s.pins[pin.ID.String()] = &cp
	return nil
}

func (s *fakePinStore) GetPin(id string) (*models.Pin, error) {
	p, ok := s.pins[id]
	if !ok {
		return nil, errNotFound
	}
	return s.clonePin(p, true), nil
}

func (s *fakePinStore) GetAllPins() ([]models.Pin, error) {
	var pins []models.Pin
	for _, p := range s.pins {
		pins = append(pins, *s.clonePin(p, false))
	}
	sort.SliceStable(pins, func(i, j int) bool {
		return pins[i].CreatedAt.After(pins[j].CreatedAt)
	})
	return pins, nil
}

func (s *fakePinStore) UpdatePin(pin *models.Pin) error {
	if _, ok := s.pins[pin.ID.String()]; !ok {
		return errNotFound
	}
	cp := *pin
	cp.Comments = nil
	cp.Owner = models.User{}
	s.pins[pin.ID.String()] = &cp
	return nil
}

func (s *fakePinStore) DeletePin(id string) error {
	if _, ok := s.pins[id]; !ok {
		return errNotFound
	}
	for _, cid := range s.pinComments[id] {
		delete(s.comments, cid)
	}
	delete(s.pinComments, id)
	for key := range s.saved {
		if strings.HasSuffix(key, "|"+id) {
			delete(s.saved, key)
		}
	}
	delete(s.pins, id)
	return nil
}

func (s *fakePinStore) AddComment(comment *models.Comment) error {
	cp := *comment
	s.comments[comment.ID.String()] = &cp
	pinID := comment.PinID.String()
	s.pinComments[pinID] = append(s.pinComments[pinID], comment.ID.String())
	return nil
}

func (s *fakePinStore) GetComment(id string) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakePinStore) DeleteComment(id string) error {
	c, ok := s.comments[id]
	if !ok {
		return errNotFound
	}
	pinID := c.PinID.String()
	ids := s.pinComments[pinID]
	for i, cid := range ids {
		if cid == id {
			s.pinComments[pinID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(s.comments, id)
	return nil
}

func (s *fakePinStore) IsPinSaved(userID, pinID string) (bool, error) {
	return s.saved[userID+"|"+pinID], nil
}

func (s *fakePinStore) SavePin(user *models.User, pin *models.Pin) error {
	s.saved[user.ID.String()+"|"+pin.ID.String()] = true
	return nil
}

func (s *fakePinStore) UnsavePin(user *models.User, pin *models.Pin) error {
	delete(s.saved, user.ID.String()+"|"+pin.ID.String())
	return nil
}

func (s *fakePinStore) GetSavedPins(userID string) ([]models.Pin, error) {
	var pins []models.Pin
	for _, p := range s.pins {
		if s.saved[userID+"|"+p.ID.String()] {
			pins = append(pins, *s.clonePin(p, true))
		}
	}
	sort.SliceStable(pins, func(i, j int) bool {
		return pins[i].CreatedAt.After(pins[j].CreatedAt)
	})
	return pins, nil
}

// fakeMedia — реализация storage.MediaStore без внешнего хранилища
type fakeMedia struct {
	uploads    int
	releases   []string
	uploadErr  error
	releaseErr error
}

func (m *fakeMedia) Upload(_ context.Context, _ io.Reader, _ string) (*storage.UploadResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.uploads++
	id := fmt.Sprintf("pins/test/%d", m.uploads)
	return &storage.UploadResult{ID: id, URL: "https://media.test/pinboard/" + id}, nil
}

func (m *fakeMedia) Release(_ context.Context, id string) error {
	if m.releaseErr != nil {
		return m.releaseErr
	}
	m.releases = append(m.releases, id)
	return nil
}

type fakeBlacklist struct {
	tokens map[string]bool
}

func (b *fakeBlacklist) Add(_ context.Context, token string, _ time.Duration) error {
	b.tokens[token] = true
	return nil
}

func (b *fakeBlacklist) Contains(_ context.Context, token string) (bool, error) {
	return b.tokens[token], nil
}

// testEnv поднимает роутер с полной таблицей маршрутов поверх фейков
type testEnv struct {
	router *gin.Engine
	users  *fakeUserStore
	pins   *fakePinStore
	media  *fakeMedia
	bl     *fakeBlacklist
	jwt    *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserStore()
	pins := newFakePinStore(users)
	media := &fakeMedia{}
	bl := &fakeBlacklist{tokens: map[string]bool{}}
	jwtMgr := auth.NewJWTManager("test-secret", 15*24*time.Hour)

	authH := NewAuthHandler(users, jwtMgr, bl)
	userH := NewUserHandler(users, media)
	pinH := NewPinHandler(pins, users, media)
	authRequired := middleware.AuthMiddleware(jwtMgr, bl, users)

	r := gin.New()

	user := r.Group("/api/user")
	{
		user.POST("/register", authH.Register)
		user.POST("/login", authH.Login)
		user.GET("/me", authRequired, userH.GetMe)
		user.GET("/logout", authRequired, authH.Logout)
		user.GET("/:id", authRequired, userH.GetUser)
		user.POST("/follow/:id", authRequired, userH.FollowUser)
		user.PUT("/update", authRequired, userH.UpdateMe)
		user.POST("/profile-image", authRequired, userH.UpdateProfileImage)
	}

	pin := r.Group("/api/pin", authRequired)
	{
		pin.POST("/new", pinH.CreatePin)
		pin.GET("/all", pinH.GetAllPins)
		pin.GET("/savedpins", pinH.GetSavedPins)
		pin.POST("/save/:id", pinH.SaveOrUnsavePin)
		pin.POST("/comment/:id", pinH.CommentOnPin)
		pin.DELETE("/comment/:id", pinH.DeleteComment)
		pin.GET("/:id", pinH.GetPin)
		pin.PUT("/:id", pinH.UpdatePin)
		pin.DELETE("/:id", pinH.DeletePin)
	}

	return &testEnv{router: r, users: users, pins: pins, media: media, bl: bl, jwt: jwtMgr}
}

func (e *testEnv) addUser(t *testing.T, name, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: name, Email: email, PasswordHash: string(hash), CreatedAt: time.Now()}
	require.NoError(t, e.users.SaveUser(u))
	return u
}

func (e *testEnv) cookie(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()
	token, err := e.jwt.Generate(userID.String())
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.do(method, path, strings.NewReader(body), "application/json", cookie)
}

// pinForm собирает multipart-форму создания пина
func pinForm(t *testing.T, title, pinText string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("pin", pinText))
	if withFile {
		fw, err := w.CreateFormFile("file", "image.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

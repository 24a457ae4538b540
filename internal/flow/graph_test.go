package flow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eleven-am/insight-backend/internal/recording"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nav(ts int64, url string) recording.Event {
	return recording.Event{Type: recording.EventNavigation, Timestamp: ts, URL: url}
}

func session(id, startURL string, events ...recording.Event) *recording.Session {
	return &recording.Session{
		ID:       id,
		Metadata: recording.Metadata{URL: startURL},
		Events:   events,
	}
}

func findNode(nodes []Node, page string) *Node {
	for i := range nodes {
		if nodes[i].Page == page {
			return &nodes[i]
		}
	}
	return nil
}

func TestExtractSequence(t *testing.T) {
	s := session("s1", "https://shop.example.com/",
		recording.Event{Type: recording.EventClick, Timestamp: 3000, Target: "button#add"},
		nav(4000, "/cart"),
		nav(1000, "/products"),
		recording.Event{Type: recording.EventClick, Timestamp: 1500, Target: "a#details", Href: "/products/"},
		nav(5000, "/products"),
		recording.Event{Type: recording.EventScroll, Timestamp: 6000},
		recording.Event{Type: recording.EventNavigation, Timestamp: 7000, Target: "not a page", Location: "https://shop.example.com/cart?x=1"},
	)

	assert.Equal(t, []string{"/", "/products", "/cart", "/products", "/cart"}, ExtractSequence(s))
}

func TestExtractSequence_NoPages(t *testing.T) {
	s := session("s1", "",
		recording.Event{Type: recording.EventClick, Timestamp: 10, Target: "button#buy"},
	)
	assert.Empty(t, ExtractSequence(s))
}

func TestBuildGraph_ThreePageSession(t *testing.T) {
	s := session("s1", "",
		nav(0, "/"),
		nav(2000, "/products"),
		nav(4000, "/cart"),
	)

	nodes := BuildGraph([]*recording.Session{s})
	require.Len(t, nodes, 3)

	root := findNode(nodes, "/")
	require.NotNil(t, root)
	assert.Equal(t, []Transition{{Target: "/products", Percent: 100}}, root.Next)

	products := findNode(nodes, "/products")
	require.NotNil(t, products)
	assert.Equal(t, []Transition{{Target: "/cart", Percent: 100}}, products.Next)

	cart := findNode(nodes, "/cart")
	require.NotNil(t, cart)
	assert.Equal(t, []Transition{{Target: ExitPage, Percent: 100}}, cart.Next)
}

func TestBuildGraph_UsersAndPercentages(t *testing.T) {
	sessions := []*recording.Session{
		session("a", "https://shop.example.com/", nav(1, "/products"), nav(2, "/cart"), nav(3, "/checkout")),
		session("b", "https://shop.example.com/", nav(1, "/pricing"), nav(2, "/signup")),
		session("c", "https://shop.example.com/", nav(1, "/about"), nav(2, "/contact")),
		session("d", "https://shop.example.com/", nav(1, "/products"), nav(2, "/"), nav(3, "/products")),
		session("e", ""),
	}

	nodes := BuildGraph(sessions)

	root := findNode(nodes, "/")
	require.NotNil(t, root)
	assert.Equal(t, 4, root.Users)
	assert.Equal(t, "/", nodes[0].Page, "most visited page comes first")

	// d leaves the root twice, so /products takes 3 of the 5 root transitions.
	total := 0
	for _, tr := range root.Next {
		total += tr.Percent
	}
	assert.InDelta(t, 100, total, float64(len(root.Next)))
	assert.Equal(t, "/products", root.Next[0].Target)

	products := findNode(nodes, "/products")
	require.NotNil(t, products)
	assert.Equal(t, 2, products.Users, "repeat visits within a session count once")

	for _, n := range nodes {
		for i := 1; i < len(n.Next); i++ {
			assert.GreaterOrEqual(t, n.Next[i-1].Percent, n.Next[i].Percent)
		}
	}
	for i := 1; i < len(nodes); i++ {
		assert.GreaterOrEqual(t, nodes[i-1].Users, nodes[i].Users)
	}
}

func TestBuildGraph_PercentConservation(t *testing.T) {
	var sessions []*recording.Session
	targets := []string{"/a", "/b", "/c"}
	for i := 0; i < 7; i++ {
		sessions = append(sessions, session("s", "/", nav(1, targets[i%3])))
	}

	for _, n := range BuildGraph(sessions) {
		sum := 0
		for _, tr := range n.Next {
			sum += tr.Percent
		}
		assert.InDelta(t, 100, sum, float64(len(n.Next)), "page %s", n.Page)
	}
}

func TestBuildGraph_Empty(t *testing.T) {
	assert.Empty(t, BuildGraph(nil))
}

type stubLister struct {
	sessions []*recording.Session
	err      error
}

func (s stubLister) List(context.Context) ([]*recording.Session, error) {
	return s.sessions, s.err
}

func TestHandler_UserFlow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(stubLister{sessions: []*recording.Session{
		session("s1", "", nav(0, "/"), nav(2000, "/products"), nav(4000, "/cart")),
	}}, logger)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/userflow", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.UserFlow(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var nodes []Node
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	assert.Len(t, nodes, 3)
}

func TestHandler_UserFlowStoreError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(stubLister{err: errors.New("redis down")}, logger)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/userflow", nil)
	rec := httptest.NewRecorder()
	err := h.UserFlow(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

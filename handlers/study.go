package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/study"
)

// StudySessions is the registry of open flip-card viewers. Each session owns
// its own deck snapshot; the mutex only guards the map.
type StudySessions struct {
	mu       sync.Mutex
	sessions map[string]*study.Session
}

func NewStudySessions() *StudySessions {
	return &StudySessions{sessions: make(map[string]*study.Session)}
}

func (s *StudySessions) add(session *study.Session) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return id, nil
}

func (s *StudySessions) get(id string) (*study.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *StudySessions) remove(id string) (*study.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}

type studyStateResponse struct {
	SessionID       string          `json:"sessionId"`
	Empty           bool            `json:"empty"`
	DefinitionFirst bool            `json:"definitionFirst"`
	Shuffled        bool            `json:"shuffled"`
	Card            *study.CardView `json:"card"`
}

func studyState(id string, session *study.Session) studyStateResponse {
	resp := studyStateResponse{
		SessionID:       id,
		Empty:           session.Empty(),
		DefinitionFirst: session.DefinitionFirst(),
		Shuffled:        session.Shuffled(),
	}
	if view, ok := session.Current(); ok {
		resp.Card = &view
	}
	return resp
}

func writeStudyState(w http.ResponseWriter, status int, id string, session *study.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(studyState(id, session))
}

// POST /api/sets/{setID}/study
//
// Opens a viewer over a snapshot of the set taken right now. Later edits to
// the set are not reflected into the open session. A seed in the request
// makes the shuffle order reproducible.
func (h *DBHandler) OpenStudySession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	setID := r.PathValue("setID")

	var req struct {
		Shuffled bool   `json:"shuffled"`
		Seed     *int64 `json:"seed"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("OpenStudySession: invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var set models.Set
	if err := h.Preload("Cards", orderedCards).
		Where("id = ? AND user_id = ?", setID, user.ID).
		First(&set).Error; err != nil {
		log.Printf("OpenStudySession: set not found for id=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	session := study.NewSession(set.Cards, req.Shuffled, rng)
	sessionID, err := h.Sessions.add(session)
	if err != nil {
		log.Printf("OpenStudySession: failed to generate session id: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("OpenStudySession: opened session %s over setID=%s (%d cards)", sessionID, setID, session.Len())
	writeStudyState(w, http.StatusCreated, sessionID, session)
}

func (h *DBHandler) studySession(w http.ResponseWriter, r *http.Request) (string, *study.Session, bool) {
	sessionID := r.PathValue("sessionID")
	session, ok := h.Sessions.get(sessionID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return "", nil, false
	}
	return sessionID, session, true
}

// GET /api/study/{sessionID}
func (h *DBHandler) GetStudySession(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// POST /api/study/{sessionID}/next
func (h *DBHandler) StudyNext(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Next()
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// POST /api/study/{sessionID}/previous
func (h *DBHandler) StudyPrevious(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Previous()
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// POST /api/study/{sessionID}/flip
func (h *DBHandler) StudyFlip(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}
	session.Flip()
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// PUT /api/study/{sessionID}/options
//
// Applies the viewer toggles. Turning shuffle on or off restarts the pass on
// a fresh deck.
func (h *DBHandler) StudyOptions(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}

	var req struct {
		DefinitionFirst *bool `json:"definitionFirst"`
		Shuffled        *bool `json:"shuffled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("StudyOptions: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.DefinitionFirst != nil {
		session.SetDefinitionFirst(*req.DefinitionFirst)
	}
	if req.Shuffled != nil {
		session.SetShuffled(*req.Shuffled)
	}
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// POST /api/study/{sessionID}/key
//
// The keyboard contract: arrows navigate, space and enter flip. Unrecognized
// keys leave the session alone.
func (h *DBHandler) StudyKey(w http.ResponseWriter, r *http.Request) {
	sessionID, session, ok := h.studySession(w, r)
	if !ok {
		return
	}

	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("StudyKey: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session.HandleKey(req.Key)
	writeStudyState(w, http.StatusOK, sessionID, session)
}

// DELETE /api/study/{sessionID}
func (h *DBHandler) CloseStudySession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	session, ok := h.Sessions.remove(sessionID)
	if !ok {
		http.Error(w, "Study session not found", http.StatusNotFound)
		return
	}
	session.Close()

	log.Printf("CloseStudySession: closed session %s", sessionID)
	w.WriteHeader(http.StatusNoContent)
}

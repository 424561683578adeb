package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/middleware"
	"github.com/shire-forum/shire/internal/models"
)

const (
	ErrEmptyMessage      = "Empty message"
	ErrMissingQuestTitle = "Missing quest title"
)

// QuestStore persists quests and their posts
type QuestStore interface {
	ListQuests(ctx context.Context) ([]models.Quest, error)
	GetQuest(ctx context.Context, questID int64) (models.Quest, bool, error)
	CreateQuest(ctx context.Context, title string) (models.Quest, error)
	ListPosts(ctx context.Context, questID int64) ([]models.Post, error)
	CreatePost(ctx context.Context, authorID, questID int64, text string) (models.Post, error)
}

type QuestHandler struct {
	responder
	quests  QuestStore
	tracker ActivityTracker
}

func NewQuestHandler(quests QuestStore, tracker ActivityTracker, views Renderer, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{
		responder: responder{views: views, logger: logger},
		quests:    quests,
		tracker:   tracker,
	}
}

type questsPage struct {
	Page
	Quests []models.Quest
}

type postsPage struct {
	Page
	Quest models.Quest
	Posts []models.Post
}

type addQuestPage struct {
	Page
	Title string
}

// List shows every quest with its post tally
func (h *QuestHandler) List(w http.ResponseWriter, r *http.Request) {
	quests, err := h.quests.ListQuests(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "quests", questsPage{Page: newPage(r), Quests: quests})
}

// Detail shows a quest's posts and accepts new ones from signed-in users
func (h *QuestHandler) Detail(w http.ResponseWriter, r *http.Request) {
	questID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	quest, found, err := h.quests.GetQuest(r.Context(), questID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if !found {
		h.NotFound(w, r)
		return
	}

	page := postsPage{Page: newPage(r), Quest: quest}

	if r.Method == http.MethodPost {
		if page.CurrentUser == nil {
			redirect(w, r, "/login/")
			return
		}

		text := r.FormValue("text")
		if text == "" {
			page.Error = ErrEmptyMessage
		} else {
			if _, err := h.quests.CreatePost(r.Context(), page.CurrentUser.ID, quest.ID, text); err != nil {
				h.serverError(w, r, err)
				return
			}
			h.recordPost(r.Context(), page.CurrentUser.Username)
			redirect(w, r, r.URL.Path)
			return
		}
	}

	page.Posts, err = h.quests.ListPosts(r.Context(), quest.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "posts", page)
}

func (h *QuestHandler) recordPost(ctx context.Context, username string) {
	if h.tracker == nil {
		return
	}
	if err := h.tracker.RecordPost(ctx, username); err != nil {
		h.logger.Warn("failed to record post", zap.String("username", username), zap.Error(err))
	}
}

// Add creates a new quest
func (h *QuestHandler) Add(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUser(r); !ok {
		redirect(w, r, "/login/")
		return
	}

	page := addQuestPage{Page: newPage(r)}

	if r.Method == http.MethodPost {
		page.Title = r.FormValue("title")
		if page.Title == "" {
			page.Error = ErrMissingQuestTitle
		} else {
			quest, err := h.quests.CreateQuest(r.Context(), page.Title)
			if err != nil {
				h.serverError(w, r, err)
				return
			}
			h.logger.Info("quest created",
				zap.Int64("quest_id", quest.ID),
				zap.String("username", page.CurrentUser.Username),
			)
			redirect(w, r, "/quests/")
			return
		}
	}

	h.render(w, r, http.StatusOK, "add_quest", page)
}

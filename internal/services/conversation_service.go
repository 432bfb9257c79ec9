package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tripspark/internal/models/request_models"
	"tripspark/internal/models/response_models"
	mem "tripspark/pkg/memcache"
	"tripspark/pkg/metrics"
	"tripspark/pkg/utils"
)

type ConversationState string

const (
	StateIdle             ConversationState = "idle"
	StateAwaitingDayCount ConversationState = "awaiting_day_count"
)

// Bot replies.
const (
	msgGreeting        = "สวัสดีค่ะ! ฉันช่วยวางแผนทริปให้คุณได้เลย ลองบอกมาว่าคุณอยากไปที่ไหน? เช่น \"ฉันอยากไปวัดพระแก้ว 3 วัน\""
	msgGenerating      = "กำลังสร้างแผนทริปสำหรับ \"%s\"..."
	msgTripSaved       = "บันทึกทริปสำเร็จ! (ID: %s)"
	msgNotFound        = "ไม่พบสถานที่ \"%s\""
	msgAskDays         = "คุณต้องการไป \"%s\" กี่วันคะ? กรุณาพิมพ์จำนวนวันเป็นตัวเลข"
	msgAskDaysAgain    = "กรุณาพิมพ์จำนวนวันเป็นตัวเลข เช่น 3"
	msgHelp            = "ขอบคุณสำหรับข้อความค่ะ หากต้องการวางแผนทริป พิมพ์ว่า \"ฉันอยากไป...\" พร้อมจำนวนวัน"
	msgGenerationError = "ขออภัย เกิดข้อผิดพลาดระหว่างการสร้างแผนทริป กรุณาลองใหม่ภายหลัง"
	msgExportLink      = "คลิกที่นี่เพื่อดูแผนทริปของคุณ: [ดูแผนทริป](%s)"
	msgExportFailed    = "ไม่สามารถสร้างแผนทริปในรูปแบบเอกสารได้ในขณะนี้ กรุณาลองใหม่ภายหลัง"
)

// Utterance results recorded in metrics.
const (
	resultGenerated              = "generated"
	resultClarificationRequested = "clarification_requested"
	resultClarificationInvalid   = "clarification_invalid"
	resultLandmarkNotFound       = "landmark_not_found"
	resultHelp                   = "help"
	resultFailed                 = "failed"
)

// GreetingMessage is the first bot message of a new conversation.
func GreetingMessage() response_models.ChatEvent {
	return botMessage(msgGreeting)
}

type ConversationSettings struct {
	City             string
	ConditionID      uint
	TripType         string
	ClarificationTTL time.Duration
}

// ConversationResult is what one utterance produced. TripID is set when a trip was saved.
type ConversationResult struct {
	ConversationID string
	State          ConversationState
	TripID         *uuid.UUID
	Events         []response_models.ChatEvent
}

type ConversationServiceInterface interface {
	HandleUserUtterance(ctx context.Context, conversationID, text string) (*ConversationResult, error)
}

type ConversationService struct {
	landmarkService LandmarkServiceInterface
	routeClient     RouteClient
	completion      utils.TextCompletionClient
	tripService     TripServiceInterface
	clarifications  mem.ClarificationStore
	metrics         *metrics.Metrics
	logger          *zap.Logger
	settings        ConversationSettings
	locks           *conversationLocks
}

func NewConversationService(
	landmarkService LandmarkServiceInterface,
	routeClient RouteClient,
	completion utils.TextCompletionClient,
	tripService TripServiceInterface,
	clarifications mem.ClarificationStore,
	m *metrics.Metrics,
	logger *zap.Logger,
	settings ConversationSettings,
) ConversationServiceInterface {
	return &ConversationService{
		landmarkService: landmarkService,
		routeClient:     routeClient,
		completion:      completion,
		tripService:     tripService,
		clarifications:  clarifications,
		metrics:         m,
		logger:          logger,
		settings:        settings,
		locks:           newConversationLocks(),
	}
}

func botMessage(text string) response_models.ChatEvent {
	return response_models.ChatEvent{
		Type:   response_models.ChatEventMessage,
		Sender: response_models.SenderBot,
		Text:   text,
	}
}

func loadingEvent(on bool) response_models.ChatEvent {
	return response_models.ChatEvent{Type: response_models.ChatEventLoading, Loading: &on}
}

// HandleUserUtterance advances the conversation by one user message. Utterances of the
// same conversation are handled one at a time. Pipeline failures become bot messages;
// only an invalid conversation id is returned as an error.
func (s *ConversationService) HandleUserUtterance(ctx context.Context, conversationID, text string) (*ConversationResult, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, utils.ErrInvalidInput
	}

	unlock := s.locks.lock(conversationID)
	defer unlock()

	log := s.logger.With(zap.String("conversation_id", conversationID))
	result := &ConversationResult{
		ConversationID: conversationID,
		State:          StateIdle,
		Events:         []response_models.ChatEvent{},
	}

	utterance := strings.TrimSpace(text)
	pending, awaiting, err := s.clarifications.Get(ctx, conversationID)
	if err != nil {
		log.Warn("read pending clarification", zap.Error(err))
		awaiting = false
	}
	if utterance == "" {
		if awaiting {
			result.State = StateAwaitingDayCount
		}
		return result, nil
	}

	result.Events = append(result.Events, response_models.ChatEvent{
		Type:   response_models.ChatEventMessage,
		Sender: response_models.SenderUser,
		Text:   utterance,
	})

	if awaiting {
		s.handleDayCountReply(ctx, log, pending, utterance, result)
		return result, nil
	}

	s.handleFreshUtterance(ctx, log, utterance, result)
	return result, nil
}

func (s *ConversationService) handleDayCountReply(
	ctx context.Context,
	log *zap.Logger,
	pending *mem.PendingClarification,
	utterance string,
	result *ConversationResult,
) {
	if days, ok := ParseDayCountReply(utterance); ok {
		s.clearClarification(ctx, log, result.ConversationID)
		s.generate(ctx, log, pending.Keyword, pending.LandmarkID, days, result)
		return
	}

	if intent := ExtractIntent(utterance); intent != nil {
		landmark, err := s.landmarkService.FindByKeyword(ctx, intent.Keyword)
		if err == nil {
			log.Info("pending clarification superseded",
				zap.String("previous_keyword", pending.Keyword),
				zap.String("keyword", intent.Keyword))
			s.clearClarification(ctx, log, result.ConversationID)
			s.handleIntent(ctx, log, intent, landmark.ID, result)
			return
		}
	}

	log.Debug("day count reply rejected",
		zap.String("keyword", pending.Keyword),
		zap.Error(utils.ErrClarificationInvalid))
	s.metrics.Utterances.WithLabelValues(resultClarificationInvalid).Inc()
	result.Events = append(result.Events, botMessage(msgAskDaysAgain))
	result.State = StateAwaitingDayCount
}

func (s *ConversationService) handleFreshUtterance(ctx context.Context, log *zap.Logger, utterance string, result *ConversationResult) {
	intent := ExtractIntent(utterance)
	if intent == nil {
		log.Debug("no trip intent", zap.Error(utils.ErrExtractionMiss))
		s.metrics.Utterances.WithLabelValues(resultHelp).Inc()
		result.Events = append(result.Events, botMessage(msgHelp))
		return
	}

	landmark, err := s.landmarkService.FindByKeyword(ctx, intent.Keyword)
	if err != nil {
		if errors.Is(err, utils.ErrLandmarkNotFound) {
			s.metrics.Utterances.WithLabelValues(resultLandmarkNotFound).Inc()
			result.Events = append(result.Events, botMessage(fmt.Sprintf(msgNotFound, intent.Keyword)))
			return
		}
		log.Error("resolve landmark", zap.String("keyword", intent.Keyword), zap.Error(err))
		s.metrics.Utterances.WithLabelValues(resultFailed).Inc()
		result.Events = append(result.Events, botMessage(msgGenerationError))
		return
	}

	s.handleIntent(ctx, log, intent, landmark.ID, result)
}

func (s *ConversationService) handleIntent(ctx context.Context, log *zap.Logger, intent *Intent, landmarkID uint, result *ConversationResult) {
	if intent.Days != nil {
		s.generate(ctx, log, intent.Keyword, landmarkID, *intent.Days, result)
		return
	}

	pending := mem.PendingClarification{
		Keyword:    intent.Keyword,
		LandmarkID: landmarkID,
		CreatedAt:  time.Now(),
	}
	if err := s.clarifications.Set(ctx, result.ConversationID, pending, s.settings.ClarificationTTL); err != nil {
		log.Error("store pending clarification", zap.Error(err))
		s.metrics.Utterances.WithLabelValues(resultFailed).Inc()
		result.Events = append(result.Events, botMessage(msgGenerationError))
		return
	}

	s.metrics.Utterances.WithLabelValues(resultClarificationRequested).Inc()
	result.Events = append(result.Events, botMessage(fmt.Sprintf(msgAskDays, intent.Keyword)))
	result.State = StateAwaitingDayCount
}

func (s *ConversationService) clearClarification(ctx context.Context, log *zap.Logger, conversationID string) {
	if err := s.clarifications.Clear(ctx, conversationID); err != nil {
		log.Warn("clear pending clarification", zap.Error(err))
	}
}

// generate runs route fetch, prompt, completion, trip creation, reconciliation,
// persistence and export. The conversation ends Idle whatever the outcome.
func (s *ConversationService) generate(
	ctx context.Context,
	log *zap.Logger,
	keyword string,
	landmarkID uint,
	days int,
	result *ConversationResult,
) {
	started := time.Now()
	log = log.With(zap.String("keyword", keyword), zap.Uint("landmark_id", landmarkID), zap.Int("days", days))
	result.State = StateIdle
	result.Events = append(result.Events,
		loadingEvent(true),
		botMessage(fmt.Sprintf(msgGenerating, keyword)),
	)

	outcome := s.runGeneration(ctx, log, keyword, landmarkID, days, result)

	result.Events = append(result.Events, loadingEvent(false))
	s.metrics.Generations.WithLabelValues(outcome).Inc()
	s.metrics.GenerationDurations.Observe(time.Since(started).Seconds())
	if outcome == metrics.OutcomeSuccess {
		s.metrics.Utterances.WithLabelValues(resultGenerated).Inc()
	} else {
		s.metrics.Utterances.WithLabelValues(resultFailed).Inc()
	}
}

func (s *ConversationService) runGeneration(
	ctx context.Context,
	log *zap.Logger,
	keyword string,
	landmarkID uint,
	days int,
	result *ConversationResult,
) string {
	fail := func(outcome string, err error) string {
		log.Error("trip generation aborted", zap.String("outcome", outcome), zap.Error(err))
		result.Events = append(result.Events, botMessage(msgGenerationError))
		return outcome
	}

	route, err := s.routeClient.FetchRoute(ctx, landmarkID, days)
	if err != nil {
		return fail(metrics.OutcomeRouteUnavailable, err)
	}

	prompt, err := BuildItineraryPrompt(route, days, s.settings.City)
	if err != nil {
		return fail(metrics.OutcomeRouteUnavailable, fmt.Errorf("%w: %v", utils.ErrRouteUnavailable, err))
	}

	narrative, err := s.completion.CompleteText(ctx, prompt)
	if err == nil && strings.TrimSpace(narrative) == "" {
		err = utils.ErrModelEmptyResponse
	}
	if err != nil {
		return fail(metrics.OutcomeModelEmpty, err)
	}

	result.Events = append(result.Events, response_models.ChatEvent{
		Type:       response_models.ChatEventMessage,
		Sender:     response_models.SenderBot,
		Text:       narrative,
		IsTripPlan: true,
		Blocks:     FormatTripPlanText(narrative),
	})

	trip, err := s.tripService.CreateTrip(ctx, request_models.CreateTripRequest{
		Name:            keyword,
		Types:           s.settings.TripType,
		Days:            days,
		ConditionID:     s.settings.ConditionID,
		AccommodationID: route.AccommodationID,
	})
	if err != nil {
		return fail(metrics.OutcomeTripNotSaved, err)
	}
	tripID, err := uuid.Parse(trip.ID)
	if err != nil {
		return fail(metrics.OutcomeTripNotSaved, err)
	}
	result.TripID = &tripID
	result.Events = append(result.Events, botMessage(fmt.Sprintf(msgTripSaved, trip.ID)))

	activities := ParseItinerary(narrative)
	reconciled := ReconcileRoute(activities, route, tripID)
	for _, act := range reconciled.Skipped {
		log.Warn("activity has no day plan",
			zap.Int("day", act.Day),
			zap.String("start_time", act.StartTime),
			zap.String("description", act.Description))
	}
	s.metrics.ActivitiesSkipped.Add(float64(len(reconciled.Skipped)))

	report := s.tripService.PersistSegments(ctx, reconciled.Segments)
	log.Info("trip segments persisted",
		zap.String("trip_id", trip.ID),
		zap.Int("activities", len(activities)),
		zap.Int("saved", report.Saved),
		zap.Ints("failed_path_indexes", report.Failed))

	link, err := s.tripService.ExportTrip(ctx, trip.ID)
	if err != nil {
		log.Warn("trip export failed", zap.String("trip_id", trip.ID), zap.Error(err))
		result.Events = append(result.Events, response_models.ChatEvent{
			Type:   response_models.ChatEventExportFailed,
			Sender: response_models.SenderBot,
			Text:   msgExportFailed,
		})
		return metrics.OutcomeSuccess
	}

	result.Events = append(result.Events, response_models.ChatEvent{
		Type:   response_models.ChatEventExportLink,
		Sender: response_models.SenderBot,
		Text:   fmt.Sprintf(msgExportLink, link),
		URL:    link,
	})
	return metrics.OutcomeSuccess
}

type conversationLock struct {
	mu   sync.Mutex
	refs int
}

// conversationLocks hands out one mutex per conversation id and forgets it once unused.
type conversationLocks struct {
	mu   sync.Mutex
	held map[string]*conversationLock
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{held: make(map[string]*conversationLock)}
}

func (l *conversationLocks) lock(id string) func() {
	l.mu.Lock()
	cl, ok := l.held[id]
	if !ok {
		cl = &conversationLock{}
		l.held[id] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.mu.Lock()
	return func() {
		cl.mu.Unlock()
		l.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}

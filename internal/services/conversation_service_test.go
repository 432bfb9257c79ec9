package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"tripspark/internal/models/response_models"
	mem "tripspark/pkg/memcache"
	"tripspark/pkg/metrics"
	"tripspark/pkg/utils"
)

type conversationFixture struct {
	svc        ConversationServiceInterface
	routes     *fakeRouteClient
	completion *fakeCompletion
	tripRepo   *fakeTripRepo
	exporter   *fakeExporter
	store      *mem.Clarifications
	metrics    *metrics.Metrics
}

func newConversationFixture() *conversationFixture {
	f := &conversationFixture{
		routes:     &fakeRouteClient{route: sampleRoute()},
		completion: &fakeCompletion{text: sampleNarrative},
		tripRepo:   newFakeTripRepo(),
		exporter:   &fakeExporter{link: "https://cdn.example/trip.pdf"},
		store:      mem.NewClarifications(),
		metrics:    metrics.New(prometheus.NewRegistry()),
	}
	landmarks := NewLandmarkService(&fakeLandmarkRepo{landmarks: sampleLandmarks()}, zap.NewNop())
	trips := NewTripService(f.tripRepo, f.exporter, f.metrics, zap.NewNop())
	f.svc = NewConversationService(landmarks, f.routes, f.completion, trips, f.store, f.metrics, zap.NewNop(),
		ConversationSettings{
			City:             "กรุงเทพฯ",
			ConditionID:      1,
			TripType:         "custom",
			ClarificationTTL: time.Minute,
		})
	return f
}

func (f *conversationFixture) say(t *testing.T, conversationID, text string) *ConversationResult {
	t.Helper()
	res, err := f.svc.HandleUserUtterance(context.Background(), conversationID, text)
	require.NoError(t, err)
	return res
}

func botTexts(events []response_models.ChatEvent) []string {
	var out []string
	for _, e := range events {
		if e.Sender == response_models.SenderBot {
			out = append(out, e.Text)
		}
	}
	return out
}

func eventsOfType(events []response_models.ChatEvent, typ response_models.ChatEventType) []response_models.ChatEvent {
	var out []response_models.ChatEvent
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestConversation_ClarificationFlow(t *testing.T) {
	f := newConversationFixture()

	res := f.say(t, "c1", "อยากไปวัดพระแก้ว")
	assert.Equal(t, StateAwaitingDayCount, res.State)
	assert.Nil(t, res.TripID)
	assert.Equal(t, []string{`คุณต้องการไป "วัดพระแก้ว" กี่วันคะ? กรุณาพิมพ์จำนวนวันเป็นตัวเลข`}, botTexts(res.Events))

	pending, ok, err := f.store.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "วัดพระแก้ว", pending.Keyword)
	assert.Equal(t, uint(1), pending.LandmarkID)

	res = f.say(t, "c1", "abc")
	assert.Equal(t, StateAwaitingDayCount, res.State)
	assert.Equal(t, []string{"กรุณาพิมพ์จำนวนวันเป็นตัวเลข เช่น 3"}, botTexts(res.Events))
	assert.Zero(t, f.routes.calls)

	res = f.say(t, "c1", "3")
	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, 1, f.routes.calls)
	assert.Equal(t, uint(1), f.routes.landmarkID)
	assert.Equal(t, 3, f.routes.days)
	require.NotNil(t, res.TripID)

	_, ok, _ = f.store.Get(context.Background(), "c1")
	assert.False(t, ok, "clarification cleared once generation starts")
}

func TestConversation_PoliteDayCountReply(t *testing.T) {
	f := newConversationFixture()

	f.say(t, "c1", "อยากไปวัดพระแก้ว")
	res := f.say(t, "c1", "3 วันค่ะ")

	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, 1, f.routes.calls)
	assert.Equal(t, 3, f.routes.days)
	require.NotNil(t, res.TripID)
}

func TestConversation_DirectGeneration(t *testing.T) {
	f := newConversationFixture()

	res := f.say(t, "c1", "ฉันอยากไปวัดพระแก้ว 2 วัน")

	assert.Equal(t, StateIdle, res.State)
	require.NotNil(t, res.TripID)
	assert.Equal(t, 2, f.routes.days)
	require.Len(t, f.completion.prompts, 1)
	assert.Contains(t, f.completion.prompts[0], "เป็นเวลา 2 วัน")

	require.Equal(t, response_models.SenderUser, res.Events[0].Sender)
	loading := eventsOfType(res.Events, response_models.ChatEventLoading)
	require.Len(t, loading, 2)
	assert.True(t, *loading[0].Loading)
	assert.False(t, *loading[1].Loading)
	assert.Equal(t, response_models.ChatEventLoading, res.Events[len(res.Events)-1].Type)

	texts := botTexts(res.Events)
	assert.Contains(t, texts, `กำลังสร้างแผนทริปสำหรับ "วัดพระแก้ว"...`)
	assert.Contains(t, texts, "บันทึกทริปสำเร็จ! (ID: "+res.TripID.String()+")")

	var plan *response_models.ChatEvent
	for i := range res.Events {
		if res.Events[i].IsTripPlan {
			plan = &res.Events[i]
		}
	}
	require.NotNil(t, plan)
	assert.Equal(t, sampleNarrative, plan.Text)
	assert.NotEmpty(t, plan.Blocks)

	links := eventsOfType(res.Events, response_models.ChatEventExportLink)
	require.Len(t, links, 1)
	assert.Equal(t, "https://cdn.example/trip.pdf", links[0].URL)
	assert.Equal(t, "คลิกที่นี่เพื่อดูแผนทริปของคุณ: [ดูแผนทริป](https://cdn.example/trip.pdf)", links[0].Text)

	stored, ok := f.tripRepo.trips[*res.TripID]
	require.True(t, ok)
	assert.Equal(t, "วัดพระแก้ว", stored.Name)
	assert.Equal(t, "custom", stored.Types)
	assert.Equal(t, 2, stored.Days)
	assert.Equal(t, uint(1), stored.ConditionID)
	require.NotNil(t, stored.AccommodationID)
	assert.Equal(t, uint(7), *stored.AccommodationID)
	assert.Len(t, stored.PathSegments, 8)

	require.Len(t, f.exporter.exported, 1)
	assert.Len(t, f.exporter.exported[0].PathSegments, 8)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generations.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestConversation_HelpAndNotFound(t *testing.T) {
	f := newConversationFixture()

	res := f.say(t, "c1", "สวัสดีค่ะ")
	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, []string{`ขอบคุณสำหรับข้อความค่ะ หากต้องการวางแผนทริป พิมพ์ว่า "ฉันอยากไป..." พร้อมจำนวนวัน`}, botTexts(res.Events))

	res = f.say(t, "c1", "อยากไปดาวอังคาร 3 วัน")
	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, []string{`ไม่พบสถานที่ "ดาวอังคาร"`}, botTexts(res.Events))
	assert.Zero(t, f.routes.calls)
}

func TestConversation_EmptyUtterance(t *testing.T) {
	f := newConversationFixture()

	res := f.say(t, "c1", "   ")
	assert.Empty(t, res.Events)
	assert.Equal(t, StateIdle, res.State)

	f.say(t, "c1", "อยากไปวัดอรุณ")
	res = f.say(t, "c1", "")
	assert.Empty(t, res.Events)
	assert.Equal(t, StateAwaitingDayCount, res.State)
}

func TestConversation_NewIntentSupersedesPending(t *testing.T) {
	f := newConversationFixture()

	f.say(t, "c1", "อยากไปวัดพระแก้ว")
	res := f.say(t, "c1", "อยากไปวัดอรุณ")
	assert.Equal(t, StateAwaitingDayCount, res.State)
	assert.Equal(t, []string{`คุณต้องการไป "วัดอรุณ" กี่วันคะ? กรุณาพิมพ์จำนวนวันเป็นตัวเลข`}, botTexts(res.Events))

	res = f.say(t, "c1", "1 วัน")
	assert.Equal(t, StateIdle, res.State)
	assert.Equal(t, uint(2), f.routes.landmarkID)
	assert.Equal(t, 1, f.routes.days)
}

func TestConversation_UnresolvableIntentKeepsPending(t *testing.T) {
	f := newConversationFixture()

	f.say(t, "c1", "อยากไปวัดพระแก้ว")
	res := f.say(t, "c1", "อยากไปดาวอังคาร")
	assert.Equal(t, StateAwaitingDayCount, res.State)
	assert.Equal(t, []string{"กรุณาพิมพ์จำนวนวันเป็นตัวเลข เช่น 3"}, botTexts(res.Events))

	pending, ok, _ := f.store.Get(context.Background(), "c1")
	require.True(t, ok)
	assert.Equal(t, "วัดพระแก้ว", pending.Keyword)
}

func TestConversation_ConversationsAreIsolated(t *testing.T) {
	f := newConversationFixture()

	f.say(t, "c1", "อยากไปวัดพระแก้ว")
	res := f.say(t, "c2", "3")
	assert.Equal(t, StateIdle, res.State)
	assert.Zero(t, f.routes.calls)
}

func TestConversation_RouteUnavailable(t *testing.T) {
	f := newConversationFixture()
	f.routes.err = utils.ErrRouteUnavailable

	res := f.say(t, "c1", "อยากไปวัดพระแก้ว 3 วัน")

	assert.Equal(t, StateIdle, res.State)
	assert.Nil(t, res.TripID)
	assert.Contains(t, botTexts(res.Events), "ขออภัย เกิดข้อผิดพลาดระหว่างการสร้างแผนทริป กรุณาลองใหม่ภายหลัง")
	assert.Empty(t, f.completion.prompts)
	assert.Empty(t, f.tripRepo.trips)
	assert.Equal(t, response_models.ChatEventLoading, res.Events[len(res.Events)-1].Type)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Generations.WithLabelValues(metrics.OutcomeRouteUnavailable)))

	f.routes.err = nil
	res = f.say(t, "c1", "อยากไปวัดพระแก้ว 3 วัน")
	assert.NotNil(t, res.TripID, "conversation stays usable after a failure")
}

func TestConversation_ModelEmptyResponse(t *testing.T) {
	for name, completion := range map[string]*fakeCompletion{
		"blank text": {text: "  \n "},
		"error":      {err: utils.ErrModelEmptyResponse},
	} {
		t.Run(name, func(t *testing.T) {
			f := newConversationFixture()
			f.completion = completion
			f.svc.(*ConversationService).completion = completion

			res := f.say(t, "c1", "อยากไปวัดพระแก้ว 3 วัน")

			assert.Nil(t, res.TripID)
			assert.Empty(t, f.tripRepo.trips)
			assert.Empty(t, eventsOfType(res.Events, response_models.ChatEventExportLink))
			assert.Contains(t, botTexts(res.Events), "ขออภัย เกิดข้อผิดพลาดระหว่างการสร้างแผนทริป กรุณาลองใหม่ภายหลัง")
		})
	}
}

func TestConversation_SegmentFailureDoesNotStopBatch(t *testing.T) {
	f := newConversationFixture()
	f.tripRepo.failOnIndex[2] = true

	res := f.say(t, "c1", "อยากไปวัดพระแก้ว 2 วัน")

	require.NotNil(t, res.TripID)
	assert.Len(t, f.tripRepo.attempted, 8)
	assert.Len(t, f.tripRepo.trips[*res.TripID].PathSegments, 7)
	assert.Len(t, eventsOfType(res.Events, response_models.ChatEventExportLink), 1)
}

func TestConversation_ExportFailureKeepsTrip(t *testing.T) {
	f := newConversationFixture()
	f.exporter.err = errors.New("renderer down")

	res := f.say(t, "c1", "อยากไปวัดพระแก้ว 2 วัน")

	require.NotNil(t, res.TripID)
	_, ok := f.tripRepo.trips[*res.TripID]
	assert.True(t, ok)
	failed := eventsOfType(res.Events, response_models.ChatEventExportFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "ไม่สามารถสร้างแผนทริปในรูปแบบเอกสารได้ในขณะนี้ กรุณาลองใหม่ภายหลัง", failed[0].Text)
	assert.Empty(t, eventsOfType(res.Events, response_models.ChatEventExportLink))
}

func TestConversation_SkippedDaysAreCounted(t *testing.T) {
	f := newConversationFixture()
	f.completion.text = sampleNarrative + "\nวันที่ 3\n09:00-10:00 เที่ยวเกาะ\n"

	res := f.say(t, "c1", "อยากไปวัดพระแก้ว 2 วัน")

	require.NotNil(t, res.TripID)
	assert.Len(t, f.tripRepo.attempted, 8)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ActivitiesSkipped))
}

func TestConversation_RejectsEmptyConversationID(t *testing.T) {
	f := newConversationFixture()
	_, err := f.svc.HandleUserUtterance(context.Background(), " ", "สวัสดี")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestConversationLocks_Serialise(t *testing.T) {
	locks := newConversationLocks()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("c1")
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locks.held)
}

func TestGreetingMessage(t *testing.T) {
	g := GreetingMessage()
	assert.Equal(t, response_models.SenderBot, g.Sender)
	assert.Contains(t, g.Text, "ฉันอยากไปวัดพระแก้ว 3 วัน")
}

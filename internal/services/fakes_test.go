package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripspark/internal/models/db_models"
	"tripspark/internal/models/response_models"
)

var errFakeDB = errors.New("fake db failure")

type fakeLandmarkRepo struct {
	landmarks []db_models.Landmark
	err       error
}

func (f *fakeLandmarkRepo) ListLandmarks(ctx context.Context) ([]db_models.Landmark, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.landmarks, nil
}

func (f *fakeLandmarkRepo) GetLandmarkByID(ctx context.Context, id uint) (*db_models.Landmark, error) {
	for i := range f.landmarks {
		if f.landmarks[i].ID == id {
			return &f.landmarks[i], nil
		}
	}
	return nil, nil
}

type fakeTripRepo struct {
	mu           sync.Mutex
	trips        map[uuid.UUID]*db_models.Trip
	attempted    []db_models.PathSegment
	failOnIndex  map[int]bool
	createErr    error
	getErr       error
	segmentCalls int
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips:       make(map[uuid.UUID]*db_models.Trip),
		failOnIndex: make(map[int]bool),
	}
}

func (f *fakeTripRepo) CreateTrip(ctx context.Context, trip *db_models.Trip) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	stored := *trip
	f.trips[trip.ID] = &stored
	return trip.ID, nil
}

func (f *fakeTripRepo) UpdateTrip(ctx context.Context, trip *db_models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.trips[trip.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Name = trip.Name
	existing.Types = trip.Types
	existing.Days = trip.Days
	existing.ConditionID = trip.ConditionID
	existing.AccommodationID = trip.AccommodationID
	return nil
}

func (f *fakeTripRepo) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trips[tripID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.trips, tripID)
	return nil
}

func (f *fakeTripRepo) GetTripByID(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	trip, ok := f.trips[tripID]
	if !ok {
		return nil, nil
	}
	out := *trip
	out.PathSegments = append([]db_models.PathSegment(nil), trip.PathSegments...)
	sort.SliceStable(out.PathSegments, func(i, j int) bool {
		a, b := out.PathSegments[i], out.PathSegments[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.PathIndex < b.PathIndex
	})
	return &out, nil
}

func (f *fakeTripRepo) ListTrips(ctx context.Context, page, pageSize int) ([]db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db_models.Trip, 0, len(f.trips))
	for _, t := range f.trips {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTripRepo) CreatePathSegment(ctx context.Context, segment *db_models.PathSegment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segmentCalls++
	f.attempted = append(f.attempted, *segment)
	if f.failOnIndex[segment.PathIndex] {
		return errFakeDB
	}
	if segment.ID == uuid.Nil {
		segment.ID = uuid.New()
	}
	if trip, ok := f.trips[segment.TripID]; ok {
		trip.PathSegments = append(trip.PathSegments, *segment)
	}
	return nil
}

type fakeRouteClient struct {
	route      *response_models.RouteData
	err        error
	calls      int
	landmarkID uint
	days       int
}

func (f *fakeRouteClient) FetchRoute(ctx context.Context, landmarkID uint, days int) (*response_models.RouteData, error) {
	f.calls++
	f.landmarkID = landmarkID
	f.days = days
	if f.err != nil {
		return nil, f.err
	}
	return f.route, nil
}

type fakeCompletion struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeCompletion) CompleteText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeExporter struct {
	link     string
	err      error
	exported []*db_models.Trip
}

func (f *fakeExporter) Export(ctx context.Context, trip *db_models.Trip) (string, error) {
	f.exported = append(f.exported, trip)
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func uintPtr(v uint) *uint { return &v }

// sampleRoute is a two-day route out of the Grand Palace with accommodation A7.
func sampleRoute() *response_models.RouteData {
	return &response_models.RouteData{
		StartName:       "วัดพระแก้ว",
		AccommodationID: uintPtr(7),
		Paths: []response_models.RouteLeg{
			{From: "P1", To: "R3", FromName: "วัดพระแก้ว", ToName: "ร้านอาหารริมน้ำ", Distance: 1.2},
			{From: "R3", To: "P2", FromName: "ร้านอาหารริมน้ำ", ToName: "วัดอรุณ", Distance: 0.8},
		},
		TripPlan: []response_models.DayPlan{
			{Day: 1, Accommodation: "A7", Plan: []string{"P1", "R3", "P2"}},
			{Day: 2, Accommodation: "A7", Plan: []string{"P5", "R9"}},
		},
	}
}

const sampleNarrative = `แผนเที่ยวกรุงเทพฯ 2 วัน

**วันที่ 1**
08:00–09:00 เช็คอินที่โรงแรมริมน้ำ
09:00–11:00 เที่ยวชมวัดพระแก้ว
11:30–13:00 รับประทานอาหารกลางวันที่ร้านอาหารริมน้ำ
13:30–15:30 เดินเล่นที่วัดอรุณ
18:00–20:00 พักผ่อนที่โรงแรมริมน้ำ

**วันที่ 2**
08:00–10:00 ถ่ายรูปที่ภูเขาทอง
10:30–12:00 แวะชิมของว่างที่ตลาด
19:00–20:00 เช็คเอาท์และเดินทางกลับ
`

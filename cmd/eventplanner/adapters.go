package main

import (
	"context"
	"fmt"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/eventdate"
	"github.com/muralisunil/event-elegance-landing/internal/persistence"
	"github.com/muralisunil/event-elegance-landing/internal/timeofday"
)

type eventRepositoryAdapter struct {
	repo persistence.EventRepository
}

func newEventRepositoryAdapter(repo persistence.EventRepository) *eventRepositoryAdapter {
	return &eventRepositoryAdapter{repo: repo}
}

func (a *eventRepositoryAdapter) CreateEvent(ctx context.Context, event application.Event) (application.Event, error) {
	if err := a.repo.CreateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.Event{}, err
	}
	return a.GetEvent(ctx, event.ID)
}

func (a *eventRepositoryAdapter) UpdateEvent(ctx context.Context, event application.Event) (application.Event, error) {
	if err := a.repo.UpdateEvent(ctx, toPersistenceEvent(event)); err != nil {
		return application.Event{}, err
	}
	return a.GetEvent(ctx, event.ID)
}

func (a *eventRepositoryAdapter) GetEvent(ctx context.Context, id string) (application.Event, error) {
	stored, err := a.repo.GetEvent(ctx, id)
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(stored)
}

func (a *eventRepositoryAdapter) ListEvents(ctx context.Context) ([]application.Event, error) {
	models, err := a.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	events := make([]application.Event, 0, len(models))
	for _, model := range models {
		event, err := toApplicationEvent(model)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

type venueRepositoryAdapter struct {
	repo persistence.VenueRepository
}

func newVenueRepositoryAdapter(repo persistence.VenueRepository) *venueRepositoryAdapter {
	return &venueRepositoryAdapter{repo: repo}
}

func (a *venueRepositoryAdapter) CreateBuilding(ctx context.Context, building application.Building) (application.Building, error) {
	if err := a.repo.CreateBuilding(ctx, toPersistenceBuilding(building)); err != nil {
		return application.Building{}, err
	}
	return a.GetBuilding(ctx, building.ID)
}

func (a *venueRepositoryAdapter) GetBuilding(ctx context.Context, id string) (application.Building, error) {
	stored, err := a.repo.GetBuilding(ctx, id)
	if err != nil {
		return application.Building{}, err
	}
	return toApplicationBuilding(stored), nil
}

func (a *venueRepositoryAdapter) ListBuildings(ctx context.Context, eventID string) ([]application.Building, error) {
	models, err := a.repo.ListBuildings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	buildings := make([]application.Building, 0, len(models))
	for _, model := range models {
		buildings = append(buildings, toApplicationBuilding(model))
	}
	return buildings, nil
}

func (a *venueRepositoryAdapter) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := a.repo.CreateRoom(ctx, toPersistenceRoom(room)); err != nil {
		return application.Room{}, err
	}
	return a.GetRoom(ctx, room.ID)
}

func (a *venueRepositoryAdapter) GetRoom(ctx context.Context, id string) (application.Room, error) {
	stored, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return application.Room{}, err
	}
	return toApplicationRoom(stored), nil
}

func (a *venueRepositoryAdapter) ListRooms(ctx context.Context, eventID string) ([]application.Room, error) {
	models, err := a.repo.ListRooms(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	rooms := make([]application.Room, 0, len(models))
	for _, model := range models {
		rooms = append(rooms, toApplicationRoom(model))
	}
	return rooms, nil
}

func (a *venueRepositoryAdapter) DeleteRoom(ctx context.Context, id string) error {
	return a.repo.DeleteRoom(ctx, id)
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := a.repo.CreateSession(ctx, toPersistenceSession(session)); err != nil {
		return application.Session{}, err
	}
	return a.GetSession(ctx, session.ID)
}

func (a *sessionRepositoryAdapter) UpdateSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := a.repo.UpdateSession(ctx, toPersistenceSession(session)); err != nil {
		return application.Session{}, err
	}
	return a.GetSession(ctx, session.ID)
}

func (a *sessionRepositoryAdapter) ReserveSession(ctx context.Context, session application.Session) (application.Session, error) {
	if err := a.repo.ReserveSession(ctx, toPersistenceSession(session)); err != nil {
		return application.Session{}, err
	}
	return a.GetSession(ctx, session.ID)
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, id string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, id)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored)
}

func (a *sessionRepositoryAdapter) DeleteSession(ctx context.Context, id string) error {
	return a.repo.DeleteSession(ctx, id)
}

func (a *sessionRepositoryAdapter) ListSessions(ctx context.Context, filter application.SessionFilter) ([]application.Session, error) {
	models, err := a.repo.ListSessions(ctx, persistence.SessionFilter{
		EventID: filter.EventID,
		RoomID:  cloneString(filter.RoomID),
	})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	sessions := make([]application.Session, 0, len(models))
	for _, model := range models {
		session, err := toApplicationSession(model)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func toApplicationEvent(model persistence.Event) (application.Event, error) {
	date, err := timeofday.ParseDate(model.EventDate)
	if err != nil {
		return application.Event{}, fmt.Errorf("event %s: stored date: %w", model.ID, err)
	}
	start, err := timeofday.Parse(model.EventTime)
	if err != nil {
		return application.Event{}, fmt.Errorf("event %s: stored start time: %w", model.ID, err)
	}

	stored := eventdate.StoredTiming{
		DurationMinutes: cloneInt(model.DurationMinutes),
		IsMultiDay:      model.IsMultiDay,
	}
	if model.EventEndDate != nil {
		endDate, err := timeofday.ParseDate(*model.EventEndDate)
		if err != nil {
			return application.Event{}, fmt.Errorf("event %s: stored end date: %w", model.ID, err)
		}
		stored.EventEndDate = &endDate
	}
	if model.EventEndTime != nil {
		endTime, err := timeofday.Parse(*model.EventEndTime)
		if err != nil {
			return application.Event{}, fmt.Errorf("event %s: stored end time: %w", model.ID, err)
		}
		stored.EventEndTime = &endTime
	}

	return application.Event{
		ID:          model.ID,
		Name:        model.Name,
		Description: cloneString(model.Description),
		Location:    model.Location,
		Timing:      application.NewTiming(date, start, stored),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

func toPersistenceEvent(event application.Event) persistence.Event {
	model := persistence.Event{
		ID:              event.ID,
		Name:            event.Name,
		Description:     cloneString(event.Description),
		Location:        event.Location,
		EventDate:       event.Timing.Date.String(),
		EventTime:       event.Timing.StartTime.String(),
		DurationMinutes: cloneInt(event.Timing.Stored.DurationMinutes),
		IsMultiDay:      event.Timing.Stored.IsMultiDay,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
	if event.Timing.Stored.EventEndDate != nil {
		value := event.Timing.Stored.EventEndDate.String()
		model.EventEndDate = &value
	}
	if event.Timing.Stored.EventEndTime != nil {
		value := event.Timing.Stored.EventEndTime.String()
		model.EventEndTime = &value
	}
	return model
}

func toApplicationBuilding(model persistence.Building) application.Building {
	return application.Building{
		ID:         model.ID,
		EventID:    model.EventID,
		Name:       model.Name,
		Address:    cloneString(model.Address),
		Notes:      cloneString(model.Notes),
		OrderIndex: model.OrderIndex,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceBuilding(building application.Building) persistence.Building {
	return persistence.Building{
		ID:         building.ID,
		EventID:    building.EventID,
		Name:       building.Name,
		Address:    cloneString(building.Address),
		Notes:      cloneString(building.Notes),
		OrderIndex: building.OrderIndex,
		CreatedAt:  building.CreatedAt,
		UpdatedAt:  building.UpdatedAt,
	}
}

func toApplicationRoom(model persistence.Room) application.Room {
	return application.Room{
		ID:         model.ID,
		EventID:    model.EventID,
		BuildingID: cloneString(model.BuildingID),
		Name:       model.Name,
		Capacity:   cloneInt(model.Capacity),
		Facilities: cloneString(model.Facilities),
		Notes:      cloneString(model.Notes),
		OrderIndex: model.OrderIndex,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceRoom(room application.Room) persistence.Room {
	return persistence.Room{
		ID:         room.ID,
		EventID:    room.EventID,
		BuildingID: cloneString(room.BuildingID),
		Name:       room.Name,
		Capacity:   cloneInt(room.Capacity),
		Facilities: cloneString(room.Facilities),
		Notes:      cloneString(room.Notes),
		OrderIndex: room.OrderIndex,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) (application.Session, error) {
	start, err := timeofday.Parse(model.StartTime)
	if err != nil {
		return application.Session{}, fmt.Errorf("session %s: stored start time: %w", model.ID, err)
	}
	end, err := timeofday.Parse(model.EndTime)
	if err != nil {
		return application.Session{}, fmt.Errorf("session %s: stored end time: %w", model.ID, err)
	}

	session := application.Session{
		ID:          model.ID,
		EventID:     model.EventID,
		Title:       model.Title,
		Start:       start,
		End:         end,
		BuildingID:  cloneString(model.BuildingID),
		RoomID:      cloneString(model.RoomID),
		Description: cloneString(model.Description),
		Location:    cloneString(model.Location),
		Speaker:     cloneString(model.Speaker),
		Metadata:    cloneMetadata(model.Metadata),
		OrderIndex:  model.OrderIndex,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.SessionType != nil {
		session.SessionType = *model.SessionType
	}
	return session, nil
}

func toPersistenceSession(session application.Session) persistence.Session {
	model := persistence.Session{
		ID:          session.ID,
		EventID:     session.EventID,
		Title:       session.Title,
		StartTime:   session.Start.String(),
		EndTime:     session.End.String(),
		BuildingID:  cloneString(session.BuildingID),
		RoomID:      cloneString(session.RoomID),
		Description: cloneString(session.Description),
		Location:    cloneString(session.Location),
		Speaker:     cloneString(session.Speaker),
		Metadata:    cloneMetadata(session.Metadata),
		OrderIndex:  session.OrderIndex,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	if session.SessionType != "" {
		sessionType := session.SessionType
		model.SessionType = &sessionType
	}
	return model
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

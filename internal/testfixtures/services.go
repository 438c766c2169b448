package testfixtures

import (
	"log/slog"
	"time"

	"github.com/muralisunil/event-elegance-landing/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Location    *time.Location
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Location:    time.UTC,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithLocation overrides the zone that decides which day "today" is.
func WithLocation(loc *time.Location) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Location = loc
	}
}

// EventServiceDeps captures dependencies for constructing an event service.
type EventServiceDeps struct {
	Events application.EventRepository
	Logger *slog.Logger
}

// NewEventService builds an event service using the factory clock and IDs.
func (f *ServiceFactory) NewEventService(deps EventServiceDeps) *application.EventService {
	return application.NewEventServiceWithLogger(
		deps.Events,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		f.Location,
		deps.Logger,
	)
}

// SessionServiceDeps captures dependencies for constructing a session service.
type SessionServiceDeps struct {
	Sessions application.SessionRepository
	Events   application.EventCatalog
	Rooms    application.RoomCatalog
	Options  application.SessionOptions
}

// NewSessionService builds a session service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewSessionService(deps SessionServiceDeps) *application.SessionService {
	return application.NewSessionService(
		deps.Sessions,
		deps.Events,
		deps.Rooms,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		deps.Options,
	)
}

// VenueServiceDeps captures dependencies for constructing a venue service.
type VenueServiceDeps struct {
	Venues application.VenueRepository
	Events application.EventCatalog
	Logger *slog.Logger
}

// NewVenueService builds a venue service using the supplied dependencies.
func (f *ServiceFactory) NewVenueService(deps VenueServiceDeps) *application.VenueService {
	return application.NewVenueServiceWithLogger(
		deps.Venues,
		deps.Events,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		deps.Logger,
	)
}

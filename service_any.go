package gaz

import (
	"context"
	"reflect"
	"sync"

	"github.com/fluxcron/dispatcher/di"
)

// anyService is a non-generic di.ServiceWrapper used by App's
// reflection-based registration (ProvideSingleton, ProvideEager, etc.),
// where the service type is only known as a reflect.Type.
type anyService struct {
	serviceName     string
	serviceTypeName string
	serviceType     reflect.Type
	provider        func(*Container) (any, error)
	transient       bool
	eager           bool

	mu       sync.Mutex
	instance any
	built    bool
}

func newTransientAny(name, typeNameStr string, serviceType reflect.Type, provider func(*Container) (any, error)) *anyService {
	return &anyService{
		serviceName:     name,
		serviceTypeName: typeNameStr,
		serviceType:     serviceType,
		provider:        provider,
		transient:       true,
	}
}

func newLazySingletonAny(name, typeNameStr string, serviceType reflect.Type, provider func(*Container) (any, error)) *anyService {
	return &anyService{
		serviceName:     name,
		serviceTypeName: typeNameStr,
		serviceType:     serviceType,
		provider:        provider,
	}
}

func newEagerSingletonAny(name, typeNameStr string, serviceType reflect.Type, provider func(*Container) (any, error)) *anyService {
	return &anyService{
		serviceName:     name,
		serviceTypeName: typeNameStr,
		serviceType:     serviceType,
		provider:        provider,
		eager:           true,
	}
}

func newInstanceServiceAny(name, typeNameStr string, instance any) *anyService {
	return &anyService{
		serviceName:     name,
		serviceTypeName: typeNameStr,
		serviceType:     reflect.TypeOf(instance),
		instance:        instance,
		built:           true,
	}
}

var _ di.ServiceWrapper = (*anyService)(nil)

func (s *anyService) Name() string     { return s.serviceName }
func (s *anyService) TypeName() string { return s.serviceTypeName }
func (s *anyService) IsEager() bool    { return s.eager }
func (s *anyService) IsTransient() bool {
	return s.transient
}
func (s *anyService) Groups() []string { return nil }

func (s *anyService) ServiceType() reflect.Type { return s.serviceType }

func (s *anyService) GetInstance(c *Container, _ []string) (any, error) {
	if s.transient {
		return s.provider(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built {
		return s.instance, nil
	}
	instance, err := s.provider(c)
	if err != nil {
		return nil, err
	}
	s.instance = instance
	s.built = true
	return instance, nil
}

// Start runs the instance's OnStart hook if it was built and implements
// di.Starter. Lazy services that were never resolved have nothing to start.
func (s *anyService) Start(ctx context.Context) error {
	s.mu.Lock()
	instance, built := s.instance, s.built
	s.mu.Unlock()
	if !built {
		return nil
	}
	if starter, ok := instance.(di.Starter); ok {
		return starter.OnStart(ctx)
	}
	return nil
}

// Stop runs the instance's OnStop hook if it was built and implements
// di.Stopper.
func (s *anyService) Stop(ctx context.Context) error {
	s.mu.Lock()
	instance, built := s.instance, s.built
	s.mu.Unlock()
	if !built {
		return nil
	}
	if stopper, ok := instance.(di.Stopper); ok {
		return stopper.OnStop(ctx)
	}
	return nil
}

func (s *anyService) HasLifecycle() bool {
	s.mu.Lock()
	instance, built := s.instance, s.built
	s.mu.Unlock()
	if built {
		if _, ok := instance.(di.Starter); ok {
			return true
		}
		if _, ok := instance.(di.Stopper); ok {
			return true
		}
		return false
	}

	t := s.serviceType
	if t == nil {
		return false
	}
	starterType := reflect.TypeOf((*di.Starter)(nil)).Elem()
	stopperType := reflect.TypeOf((*di.Stopper)(nil)).Elem()
	if t.Implements(starterType) || t.Implements(stopperType) {
		return true
	}
	if t.Kind() != reflect.Pointer {
		pt := reflect.PointerTo(t)
		return pt.Implements(starterType) || pt.Implements(stopperType)
	}
	return false
}

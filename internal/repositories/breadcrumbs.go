package repositories

import (
	"github.com/myrjola/mattepaint/internal/broker"
	"github.com/myrjola/mattepaint/internal/models"
	"slices"
	"sync"
)

// BreadcrumbStore is the navigation trail shared by the whole application. It lives only as long as the process.
type BreadcrumbStore struct {
	mu       sync.RWMutex
	crumbs   []models.Breadcrumb
	notifier *broker.Notifier[[]models.Breadcrumb]
}

func NewBreadcrumbStore() *BreadcrumbStore {
	s := &BreadcrumbStore{
		mu:       sync.RWMutex{},
		crumbs:   []models.Breadcrumb{},
		notifier: broker.NewNotifier[[]models.Breadcrumb](),
	}
	go s.notifier.Start()
	s.notifier.Publish([]models.Breadcrumb{})
	return s
}

// Get returns a copy of the trail.
func (s *BreadcrumbStore) Get() []models.Breadcrumb {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.crumbs)
}

// Set replaces the trail wholesale.
func (s *BreadcrumbStore) Set(crumbs []models.Breadcrumb) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crumbs = slices.Clone(crumbs)
	if s.crumbs == nil {
		s.crumbs = []models.Breadcrumb{}
	}
	s.notifier.Publish(slices.Clone(s.crumbs))
}

// Subscribe returns a channel receiving the current trail followed by the trail after every Set, and a function to
// cancel the subscription.
func (s *BreadcrumbStore) Subscribe() (<-chan []models.Breadcrumb, func()) {
	return s.notifier.Subscribe()
}

// Close stops notifying subscribers and closes their channels.
func (s *BreadcrumbStore) Close() {
	s.notifier.Stop()
}

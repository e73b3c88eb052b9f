// Package alerts periodically scans stock levels and pushes a web push
// notification when an item falls below its configured threshold ratio.
package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/mahmoudbymassen/station-managment/config"
	"github.com/mahmoudbymassen/station-managment/internal/model"
	"github.com/mahmoudbymassen/station-managment/internal/notification"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// Service orchestrates the low-stock scan loop.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool

	mu    sync.Mutex
	fired map[string]bool // (station,item) pairs already alerted
}

// NewService creates and initializes an alert service.
func NewService(cfg *config.Config, st store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	return &Service{
		cfg:        cfg,
		store:      st,
		workerPool: notification.NewWorkerPool(cfg.WorkerPool.Size, st.DB(), &webpushOptions),
		fired:      make(map[string]bool),
	}
}

// Run starts the scan loop. It blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Alerts.Enabled {
		log.Println("Low-stock alerts are disabled. Not starting.")
		return
	}
	log.Println("Starting low-stock alert service...")

	s.workerPool.Start(ctx)

	s.CheckOnce(ctx)

	timer := time.NewTimer(s.cfg.Alerts.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Low-stock alert service shutting down.")
			return
		case <-timer.C:
			s.CheckOnce(ctx)
			timer.Reset(s.cfg.Alerts.Interval)
		}
	}
}

// threshold returns the alerting ratio for a stock item.
func (s *Service) threshold(item string) float64 {
	if item == model.ItemLubricant {
		return s.cfg.Alerts.LubricantThreshold
	}
	return s.cfg.Alerts.FuelThreshold
}

// CheckOnce performs a single scan over all stock rows and dispatches an
// alert for each row that crossed below its threshold since the last
// scan. A row alerts once until it recovers above the threshold.
func (s *Service) CheckOnce(ctx context.Context) {
	var stocks []model.Stock
	if err := s.store.DB().WithContext(ctx).Find(&stocks).Error; err != nil {
		log.Printf("Error scanning stock levels: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stock := range stocks {
		if stock.Capacity <= 0 {
			continue
		}
		key := fmt.Sprintf("%d/%s", stock.StationID, stock.Item)
		low := stock.Level/stock.Capacity < s.threshold(stock.Item)

		switch {
		case low && !s.fired[key]:
			s.fired[key] = true
			s.workerPool.Dispatch(notification.Alert{
				StationID: stock.StationID,
				Item:      stock.Item,
				Level:     stock.Level,
				Capacity:  stock.Capacity,
			})
		case !low && s.fired[key]:
			delete(s.fired, key)
		}
	}
}

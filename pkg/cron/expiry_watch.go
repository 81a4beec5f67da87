package cron

import (
	"log"
	"sync"
	"time"

	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/email"
	"resellpanel_backend/pkg/lifecycle"
	"resellpanel_backend/pkg/workingset"

	"github.com/robfig/cron/v3"
)

// ExpiryCounts is the latest snapshot produced by the minute sweep.
type ExpiryCounts struct {
	Expired      int       `json:"expired"`
	ExpiringSoon int       `json:"expiringSoon"`
	Unlimited    int       `json:"unlimited"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	snapshotMu sync.RWMutex
	snapshot   ExpiryCounts
)

// ExpirySnapshot returns the counts from the most recent sweep.
func ExpirySnapshot() ExpiryCounts {
	snapshotMu.RLock()
	defer snapshotMu.RUnlock()
	return snapshot
}

func InitExpiryWatchCron(store *workingset.Store) {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", func() {
		refreshExpirySnapshot(store)
	})
	if err != nil {
		log.Printf("Could not initialize expiry watch cron: %v", err)
		return
	}

	_, err = c.AddFunc("0 9 * * *", func() {
		sendExpiryWarnings()
	})
	if err != nil {
		log.Printf("Could not initialize expiry warning cron: %v", err)
		return
	}

	c.Start()

	// Seed the snapshot so the dashboard is not empty until the first tick.
	refreshExpirySnapshot(store)
}

func refreshExpirySnapshot(store *workingset.Store) {
	var subs []model.Submission
	err := database.GetDB().
		Order("request_date desc").
		Find(&subs).Error
	if err != nil {
		log.Printf("Error refreshing expiry snapshot: %v", err)
		return
	}

	if store != nil {
		store.Load(subs)
	}

	now := time.Now()
	var counts ExpiryCounts
	for _, sub := range subs {
		switch sub.Expiry(now).State {
		case lifecycle.ExpiryExpired:
			counts.Expired++
		case lifecycle.ExpiryExpiringSoon:
			counts.ExpiringSoon++
		case lifecycle.ExpiryUnlimited:
			counts.Unlimited++
		}
	}
	counts.CheckedAt = now

	snapshotMu.Lock()
	snapshot = counts
	snapshotMu.Unlock()
}

func sendExpiryWarnings() {
	log.Println("Checking for expiring subscriptions...")

	warningDays := []int{7, 3}
	now := time.Now()

	var subs []model.Submission
	err := database.GetDB().
		Where("status = ? AND end_date <> ? AND end_date <> ?", lifecycle.StatusSuccessful, "", lifecycle.EndDateUnlimited).
		Preload("Reseller").
		Find(&subs).Error
	if err != nil {
		log.Printf("Error fetching expiring submissions: %v", err)
		return
	}

	for _, days := range warningDays {
		sent := 0
		for _, sub := range subs {
			info := sub.Expiry(now)
			if info.State != lifecycle.ExpiryExpiringSoon || info.DaysLeft != days {
				continue
			}
			if email.GlobalEmailService == nil || sub.Reseller == nil || info.EndDate == nil {
				continue
			}

			err := email.GlobalEmailService.SendExpiryWarning(
				sub.Reseller.Email,
				sub.Reseller.DisplayName(),
				sub.CustomerEmail,
				sub.ProfileName,
				info.DaysLeft,
				*info.EndDate,
			)
			if err != nil {
				log.Printf("Error sending expiry warning to %s: %v", sub.Reseller.Email, err)
			} else {
				sent++
			}
		}
		log.Printf("Sent %d expiry warnings for submissions expiring in %d days", sent, days)
	}
}

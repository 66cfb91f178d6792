package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const seededDays = 14

// shift describes the daily driving habit of a sample driver in local time.
type shift struct {
	startHour int
	legs      int
	legMin    [2]int // leg length range, minutes
	gapMin    [2]int // pause between legs, minutes
}

type sampleDriver struct {
	id       string
	idBase   int64
	timezone string // empty means no profile row
	shift    shift
}

var drivers = []sampleDriver{
	// day shift with proper breaks
	{id: "dev-00001", idBase: 1_000_000, timezone: "Asia/Shanghai",
		shift: shift{startHour: 8, legs: 4, legMin: [2]int{40, 80}, gapMin: [2]int{20, 45}}},
	// long continuous night driving
	{id: "dev-00042", idBase: 2_000_000, timezone: "Asia/Shanghai",
		shift: shift{startHour: 22, legs: 5, legMin: [2]int{50, 90}, gapMin: [2]int{3, 10}}},
	// long day with short stops
	{id: "dev-00107", idBase: 3_000_000, timezone: "Europe/Berlin",
		shift: shift{startHour: 6, legs: 6, legMin: [2]int{45, 70}, gapMin: [2]int{5, 25}}},
	// no profile, analysed in the default timezone
	{id: "dev-00250", idBase: 4_000_000,
		shift: shift{startHour: 14, legs: 3, legMin: [2]int{30, 60}, gapMin: [2]int{15, 40}}},
}

// Run seeds the database with sample driver profiles and trips ending
// today. Trip IDs are deterministic, so calling it again only fills gaps.
func Run(db *gorm.DB, log *logrus.Logger) error {
	if err := db.AutoMigrate(&domain.Trip{}, &domain.DriverProfile{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for _, d := range drivers {
		if d.timezone != "" {
			profile := domain.DriverProfile{DriverID: d.id, Timezone: d.timezone}
			if err := db.Where("devid = ?", d.id).FirstOrCreate(&profile).Error; err != nil {
				return fmt.Errorf("failed to create profile %s: %w", d.id, err)
			}
		}

		trips := generateTrips(d, now, rng)
		for i := range trips {
			if err := db.Where("traj_id = ?", trips[i].ID).FirstOrCreate(&trips[i]).Error; err != nil {
				return fmt.Errorf("failed to create trip %d: %w", trips[i].ID, err)
			}
		}
		log.WithFields(logrus.Fields{"driver_id": d.id, "trips": len(trips)}).Info("Seeded driver")
	}

	log.Info("Seed completed")
	return nil
}

// generateTrips lays out seededDays shifts for d, skipping legs that would
// start after now.
func generateTrips(d sampleDriver, now time.Time, rng *rand.Rand) []domain.Trip {
	loc := time.UTC
	if d.timezone != "" {
		if l, err := time.LoadLocation(d.timezone); err == nil {
			loc = l
		}
	}
	localNow := now.In(loc)

	var trips []domain.Trip
	for day := seededDays - 1; day >= 0; day-- {
		date := localNow.AddDate(0, 0, -day)
		cursor := time.Date(date.Year(), date.Month(), date.Day(), d.shift.startHour, rng.Intn(30), 0, 0, loc)
		shiftDay := epochDay(cursor)

		for leg := 0; leg < d.shift.legs; leg++ {
			length := time.Duration(between(rng, d.shift.legMin)) * time.Minute
			end := cursor.Add(length)
			if !cursor.Before(now) {
				break
			}
			if end.After(now) {
				end = now
			}

			trips = append(trips, domain.Trip{
				ID:         d.idBase + shiftDay*10 + int64(leg),
				DriverID:   d.id,
				TravelTime: int64(end.Sub(cursor).Seconds()),
				BeginTime:  cursor.Unix(),
				EndTime:    end.Unix(),
			})

			cursor = end.Add(time.Duration(between(rng, d.shift.gapMin)) * time.Minute)
		}
	}
	return trips
}

// epochDay numbers the shift's start day so IDs stay stable across runs.
func epochDay(t time.Time) int64 {
	_, offset := t.Zone()
	return (t.Unix() + int64(offset)) / 86400
}

func between(rng *rand.Rand, r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + rng.Intn(r[1]-r[0]+1)
}

// DriverIDs lists the seeded driver identifiers.
func DriverIDs() []string {
	ids := make([]string, len(drivers))
	for i, d := range drivers {
		ids[i] = d.id
	}
	return ids
}

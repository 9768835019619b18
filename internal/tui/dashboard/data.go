package dashboard

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

var crops = []string{
	"rice", "wheat", "maize", "banana", "apple", "grapes",
	"cotton", "coffee", "coconut", "mango", "orange", "papaya",
	"chickpea", "lentil", "kidneybeans", "blackgram", "mungbean",
	"pigeonpeas", "mothbeans", "jute", "muskmelon", "watermelon",
	"pomegranate",
}

// Reading is one soil analysis and the crop recommended for it.
type Reading struct {
	ID            uuid.UUID
	Location      string
	Crop          string
	Nitrogen      float64 // mg/kg
	Phosphorus    float64 // mg/kg
	Potassium     float64 // mg/kg
	Temperature   float64 // °C
	Moisture      float64 // %
	PH            float64
	Conductivity  float64 // dS/m
	Rainfall      float64 // mm
	RecommendedAt time.Time
}

// GenerateReadings builds n readings from seed. The same seed and now
// always produce the same readings, ids included.
func GenerateReadings(n int, seed int64, now time.Time) []Reading {
	rng := rand.New(rand.NewSource(seed))
	uniform := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }

	out := make([]Reading, 0, n)
	for i := range n {
		r := Reading{
			Location:     fmt.Sprintf("Field %d", i+1),
			Nitrogen:     uniform(20, 120),
			Phosphorus:   uniform(10, 100),
			Potassium:    uniform(15, 150),
			Temperature:  uniform(15, 35),
			Moisture:     uniform(25, 85),
			PH:           uniform(5.5, 8.5),
			Conductivity: uniform(0.5, 3.0),
			Rainfall:     uniform(20, 200),
			Crop:         crops[rng.Intn(len(crops))],
		}
		age := time.Duration(rng.Intn(31))*24*time.Hour +
			time.Duration(rng.Intn(24))*time.Hour +
			time.Duration(rng.Intn(60))*time.Minute
		r.RecommendedAt = now.Add(-age)

		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			id = uuid.New()
		}
		r.ID = id
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendedAt.After(out[j].RecommendedAt)
	})
	return out
}

// Summary holds the averages shown on the stats cards.
type Summary struct {
	Count        int
	Nitrogen     float64
	Phosphorus   float64
	Potassium    float64
	Temperature  float64
	Moisture     float64
	PH           float64
	Conductivity float64
}

// Summarize averages readings. An empty slice yields the zero Summary.
func Summarize(readings []Reading) Summary {
	var s Summary
	if len(readings) == 0 {
		return s
	}
	for _, r := range readings {
		s.Nitrogen += r.Nitrogen
		s.Phosphorus += r.Phosphorus
		s.Potassium += r.Potassium
		s.Temperature += r.Temperature
		s.Moisture += r.Moisture
		s.PH += r.PH
		s.Conductivity += r.Conductivity
	}
	n := float64(len(readings))
	s.Count = len(readings)
	s.Nitrogen /= n
	s.Phosphorus /= n
	s.Potassium /= n
	s.Temperature /= n
	s.Moisture /= n
	s.PH /= n
	s.Conductivity /= n
	return s
}

// CropCount is how often a crop was recommended.
type CropCount struct {
	Crop  string
	Count int
}

// CountCrops tallies recommendations, most frequent first, ties by name.
func CountCrops(readings []Reading) []CropCount {
	counts := make(map[string]int)
	for _, r := range readings {
		counts[r.Crop]++
	}
	out := make([]CropCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CropCount{Crop: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Crop < out[j].Crop
	})
	return out
}

package geocoding

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Geocoder resolves street addresses to coordinates through Nominatim,
// with an on-disk JSON cache so repeated analyses of the same address
// never hit the network twice.
type Geocoder struct {
	logger    *logrus.Logger
	cacheDir  string
	cache     map[string][]float64
	cacheLock sync.RWMutex
	client    *http.Client
}

func NewGeocoder(logger *logrus.Logger, cacheDir string) *Geocoder {
	os.MkdirAll(cacheDir, 0755)

	g := &Geocoder{
		logger:   logger,
		cacheDir: cacheDir,
		cache:    make(map[string][]float64),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	g.loadCache()
	return g
}

func (g *Geocoder) loadCache() {
	cacheFile := filepath.Join(g.cacheDir, "geocode_cache.json")
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, &g.cache); err != nil {
		g.logger.Errorf("Failed to parse geocode cache: %v", err)
		return
	}
	g.logger.Infof("Loaded %d cached addresses", len(g.cache))
}

func (g *Geocoder) saveCache() {
	g.cacheLock.RLock()
	defer g.cacheLock.RUnlock()

	cacheFile := filepath.Join(g.cacheDir, "geocode_cache.json")
	data, err := json.Marshal(g.cache)
	if err != nil {
		g.logger.Errorf("Failed to marshal geocode cache: %v", err)
		return
	}
	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		g.logger.Errorf("Failed to save geocode cache: %v", err)
	}
}

type nominatimResponse []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// GeocodeAddress resolves a US street address. Cached results are
// served without the one-second Nominatim courtesy delay.
func (g *Geocoder) GeocodeAddress(street, city, state, zipCode string) (float64, float64, error) {
	cacheKey := fmt.Sprintf("%s|%s|%s|%s", street, city, state, zipCode)
	fullAddress := fmt.Sprintf("%s, %s, %s %s, USA", street, city, state, zipCode)

	g.cacheLock.RLock()
	if coords, ok := g.cache[cacheKey]; ok {
		g.cacheLock.RUnlock()
		if len(coords) == 2 {
			return coords[0], coords[1], nil
		}
		return 0, 0, fmt.Errorf("invalid cached coordinates")
	}
	g.cacheLock.RUnlock()

	g.logger.WithField("address", fullAddress).Info("Geocoding address with Nominatim")

	// Respect Nominatim's usage policy
	time.Sleep(time.Second)

	params := url.Values{
		"q":            []string{fullAddress},
		"format":       []string{"json"},
		"limit":        []string{"1"},
		"countrycodes": []string{"us"},
	}

	req, err := http.NewRequest("GET", "https://nominatim.openstreetmap.org/search", nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %v", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "HomeSight Property Analyzer/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.WithError(err).WithField("address", fullAddress).Error("Geocoding request failed")
		return 0, 0, fmt.Errorf("geocoding request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read response: %v", err)
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %v", err)
	}
	if len(result) == 0 {
		return 0, 0, fmt.Errorf("no results found for address: %s", fullAddress)
	}

	var lat, lon float64
	fmt.Sscanf(result[0].Lat, "%f", &lat)
	fmt.Sscanf(result[0].Lon, "%f", &lon)

	g.cacheLock.Lock()
	g.cache[cacheKey] = []float64{lat, lon}
	g.cacheLock.Unlock()

	go g.saveCache()

	return lat, lon, nil
}

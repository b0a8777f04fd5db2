// Package fleet provides the vehicle registry the report engine reads:
// acquisition cost, odometer kilometers, and financing plan per vehicle.
package fleet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fleetfin-dev/fleetfin/internal/model"
)

// ErrNotFound indicates an explicit lookup of an unknown vehicle.
var ErrNotFound = errors.New("vehicle not found")

const registryFile = "vehicles.csv"

// Service provides in-memory lookup over the vehicle registry.
type Service struct {
	vehicles []model.Vehicle
	byID     map[string]model.Vehicle
}

// NewService creates a Service from a slice of vehicles.
func NewService(vehicles []model.Vehicle) *Service {
	byID := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	return &Service{vehicles: vehicles, byID: byID}
}

// Load reads vehicles.csv from a books directory. A missing registry is an
// empty fleet.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, registryFile)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening vehicle registry: %w", err)
	}
	defer f.Close()

	vehicles, err := ReadVehicles(f)
	if err != nil {
		return nil, fmt.Errorf("reading vehicle registry: %w", err)
	}
	return NewService(vehicles), nil
}

// All returns all vehicles.
func (s *Service) All() []model.Vehicle {
	return s.vehicles
}

// Get returns a vehicle by ID.
func (s *Service) Get(id string) (model.Vehicle, bool) {
	v, ok := s.byID[id]
	return v, ok
}

// Exists reports whether a vehicle ID is registered.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Financed returns the vehicles carrying a financing plan.
func (s *Service) Financed() []model.Vehicle {
	var out []model.Vehicle
	for _, v := range s.vehicles {
		if v.Financing != nil {
			out = append(out, v)
		}
	}
	return out
}

// Add registers a vehicle. Duplicate IDs are rejected.
func (s *Service) Add(v model.Vehicle) error {
	if _, ok := s.byID[v.ID]; ok {
		return fmt.Errorf("vehicle %s already registered", v.ID)
	}
	s.vehicles = append(s.vehicles, v)
	s.byID[v.ID] = v
	return nil
}

// Save writes the registry to <root>/vehicles.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, registryFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating vehicle registry: %w", err)
	}
	defer f.Close()

	if err := WriteVehicles(f, s.vehicles); err != nil {
		return fmt.Errorf("writing vehicle registry: %w", err)
	}
	return nil
}

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/staffdesk/core/internal/application/services"
	"github.com/staffdesk/core/internal/domain/entities"
	"github.com/staffdesk/core/internal/ports"
)

func newGeoFixture() (*services.GeoService, *memCountryRepo, *memStateRepo, *memCityRepo) {
	countries := newMemCountryRepo()
	states := newMemStateRepo()
	cities := newMemCityRepo()
	svc := services.NewGeoService(countries, states, cities, testLogger())
	return svc, countries, states, cities
}

func TestCreateCountryValidation(t *testing.T) {
	svc, _, _, _ := newGeoFixture()

	_, err := svc.CreateCountry(context.Background(), ports.CountryRequest{Name: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *entities.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Fields["name"]) != 1 {
		t.Fatalf("expected one message on name, got %v", ve.Fields)
	}
}

func TestCreateStateRequiresExistingCountry(t *testing.T) {
	svc, _, _, _ := newGeoFixture()

	_, err := svc.CreateState(context.Background(), ports.StateRequest{Name: "Bavaria", CountryID: 42})
	if !errors.Is(err, entities.ErrCountryNotFound) {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestDeleteCountryWithStatesConflict(t *testing.T) {
	svc, countries, _, _ := newGeoFixture()
	ctx := context.Background()

	country, err := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: country.ID}); err != nil {
		t.Fatal(err)
	}

	err = svc.DeleteCountry(ctx, country.ID)
	if !errors.Is(err, entities.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if _, err := countries.GetByID(ctx, country.ID); err != nil {
		t.Fatal("country must survive a refused delete")
	}
}

func TestDeleteStateWithCitiesConflict(t *testing.T) {
	svc, _, states, _ := newGeoFixture()
	ctx := context.Background()

	country, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	state, _ := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: country.ID})
	if _, err := svc.CreateCity(ctx, ports.CityRequest{Name: "Munich", StateID: state.ID}); err != nil {
		t.Fatal(err)
	}

	err := svc.DeleteState(ctx, state.ID)
	if !errors.Is(err, entities.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if _, err := states.GetByID(ctx, state.ID); err != nil {
		t.Fatal("state must survive a refused delete")
	}
}

func TestDeleteLeafNodesSucceeds(t *testing.T) {
	svc, _, _, _ := newGeoFixture()
	ctx := context.Background()

	country, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	state, _ := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: country.ID})
	city, _ := svc.CreateCity(ctx, ports.CityRequest{Name: "Munich", StateID: state.ID})

	// Bottom-up removal never conflicts.
	if err := svc.DeleteCity(ctx, city.ID); err != nil {
		t.Fatalf("delete city: %v", err)
	}
	if err := svc.DeleteState(ctx, state.ID); err != nil {
		t.Fatalf("delete state: %v", err)
	}
	if err := svc.DeleteCountry(ctx, country.ID); err != nil {
		t.Fatalf("delete country: %v", err)
	}
}

// The repository delete is a raw row removal. Bypassing the service leaves
// children orphaned; that is exactly why the service refuses such deletes.
func TestRepositoryDeleteDoesNotCascade(t *testing.T) {
	svc, countries, states, _ := newGeoFixture()
	ctx := context.Background()

	country, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	state, _ := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: country.ID})

	if err := countries.Delete(ctx, country.ID); err != nil {
		t.Fatal(err)
	}

	orphan, err := states.GetByID(ctx, state.ID)
	if err != nil {
		t.Fatal("state row must survive a raw parent delete")
	}
	if orphan.CountryID != country.ID {
		t.Fatalf("orphan keeps its dangling parent reference, got %d", orphan.CountryID)
	}
}

func TestStatesOfAndCitiesOf(t *testing.T) {
	svc, _, _, _ := newGeoFixture()
	ctx := context.Background()

	de, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	fr, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "France"})
	bav, _ := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: de.ID})
	svc.CreateState(ctx, ports.StateRequest{Name: "Occitanie", CountryID: fr.ID})
	svc.CreateCity(ctx, ports.CityRequest{Name: "Munich", StateID: bav.ID})

	states, err := svc.ListStates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := services.StatesOf(states, de.ID)
	if len(got) != 1 || got[0].Name != "Bavaria" {
		t.Fatalf("expected [Bavaria], got %v", got)
	}

	cities, err := svc.ListCities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(services.CitiesOf(cities, bav.ID)) != 1 {
		t.Fatal("expected one city under Bavaria")
	}
	if len(services.CitiesOf(cities, 999)) != 0 {
		t.Fatal("expected no cities under unknown state")
	}
}

func TestUpdateStateMovesCountry(t *testing.T) {
	svc, _, _, _ := newGeoFixture()
	ctx := context.Background()

	de, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "Germany"})
	fr, _ := svc.CreateCountry(ctx, ports.CountryRequest{Name: "France"})
	state, _ := svc.CreateState(ctx, ports.StateRequest{Name: "Bavaria", CountryID: de.ID})

	updated, err := svc.UpdateState(ctx, state.ID, ports.StateRequest{Name: "Bavaria", CountryID: fr.ID})
	if err != nil {
		t.Fatal(err)
	}
	if updated.CountryID != fr.ID {
		t.Fatalf("expected country %d, got %d", fr.ID, updated.CountryID)
	}
}

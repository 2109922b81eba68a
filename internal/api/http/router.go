package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bikefleet-backend/internal/repository"
	"bikefleet-backend/internal/security"
	"bikefleet-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	SSO       service.SSOService
	Booking   service.BookingService
	Team      service.TeamService
	User      service.UserService
	Bike      service.BikeService
	Rental    service.RentalService
	Poi       service.PoiService
	Departure service.DepartureService
}

// NewRouter builds the full API surface. Staff endpoints require an
// access token; passenger endpoints accept a session token as well.
func NewRouter(svcs Services, tokens security.TokenManager, userRepo repository.UserRepository) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authMW := NewAuthMiddleware(tokens, userRepo)
	staffOnly := authMW.Require(security.TokenTypeAccess)
	anySession := authMW.Require(security.TokenTypeAccess, security.TokenTypeSession)

	// Public: credentials, SSO flows, booking lookup.
	authH := NewAuthHandler(svcs.Auth)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authH.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authH.Logout).Methods(http.MethodPost)

	ssoH := NewSSOHandler(svcs.SSO)
	api.HandleFunc("/auth/sso/staff", ssoH.StaffLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/staff/callback", ssoH.StaffCallback).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/pwa", ssoH.PwaLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/pwa/callback", ssoH.PwaCallback).Methods(http.MethodGet)

	bookingH := NewBookingHandler(svcs.Booking)
	api.HandleFunc("/bookings/{code}/validate", bookingH.Validate).Methods(http.MethodGet)

	// Passenger: linking a booking needs any authenticated session.
	pax := api.PathPrefix("").Subrouter()
	pax.Use(anySession)
	pax.HandleFunc("/bookings/link", bookingH.Link).Methods(http.MethodPost)

	// Staff: everything below needs an access token.
	staff := api.PathPrefix("").Subrouter()
	staff.Use(staffOnly)

	teamH := NewTeamHandler(svcs.Team)
	staff.HandleFunc("/teams", teamH.Create).Methods(http.MethodPost)
	staff.HandleFunc("/teams/{id}", teamH.Get).Methods(http.MethodGet)
	staff.HandleFunc("/teams/{id}", teamH.Update).Methods(http.MethodPut)
	staff.HandleFunc("/teams/{id}", teamH.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/teams/{id}/select", teamH.Select).Methods(http.MethodPost)
	staff.HandleFunc("/teams/{id}/members", teamH.AddMember).Methods(http.MethodPost)
	staff.HandleFunc("/teams/{id}/members/{userID}", teamH.UpdateMember).Methods(http.MethodPut)
	staff.HandleFunc("/teams/{id}/members/{userID}", teamH.RemoveMember).Methods(http.MethodDelete)

	userH := NewUserHandler(svcs.User)
	staff.HandleFunc("/users/{id}", userH.Update).Methods(http.MethodPut)
	staff.HandleFunc("/users/{id}", userH.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/users/{id}/restore", userH.Restore).Methods(http.MethodPost)
	staff.HandleFunc("/users/{id}/role", userH.ChangeRole).Methods(http.MethodPut)

	bikeH := NewBikeHandler(svcs.Bike)
	staff.HandleFunc("/bikes", bikeH.Create).Methods(http.MethodPost)
	staff.HandleFunc("/bikes", bikeH.List).Methods(http.MethodGet)
	staff.HandleFunc("/bikes/{id}", bikeH.Get).Methods(http.MethodGet)
	staff.HandleFunc("/bikes/{id}/status", bikeH.UpdateStatus).Methods(http.MethodPut)
	staff.HandleFunc("/bikes/{id}", bikeH.Delete).Methods(http.MethodDelete)

	rentalH := NewRentalHandler(svcs.Rental)
	staff.HandleFunc("/rentals", rentalH.Create).Methods(http.MethodPost)
	staff.HandleFunc("/rentals", rentalH.List).Methods(http.MethodGet)
	staff.HandleFunc("/rentals/{id}", rentalH.Get).Methods(http.MethodGet)
	staff.HandleFunc("/rentals/{id}/status", rentalH.UpdateStatus).Methods(http.MethodPut)

	poiH := NewPoiHandler(svcs.Poi)
	staff.HandleFunc("/pois", poiH.Create).Methods(http.MethodPost)
	staff.HandleFunc("/pois/{id}", poiH.Update).Methods(http.MethodPut)
	staff.HandleFunc("/pois/{id}", poiH.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/pois/{id}/approve", poiH.Approve).Methods(http.MethodPost)
	staff.HandleFunc("/pois/{id}/toggle-active", poiH.ToggleActive).Methods(http.MethodPost)

	depH := NewDepartureHandler(svcs.Departure)
	staff.HandleFunc("/departures", depH.Create).Methods(http.MethodPost)
	staff.HandleFunc("/departures", depH.List).Methods(http.MethodGet)
	staff.HandleFunc("/departures/{id}", depH.Update).Methods(http.MethodPut)
	staff.HandleFunc("/departures/{id}/toggle-active", depH.ToggleActive).Methods(http.MethodPost)

	return r
}

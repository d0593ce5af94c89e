package site

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rasp_unitech/modules/api"
	"rasp_unitech/modules/schedule"
)

// HTTP-доступ к расписанию
type Site struct {
	Service *api.Service
	Debug   *log.Logger
	// Текущее время, подменяется в тестах
	Now func() time.Time
}

func New(service *api.Service, debug *log.Logger) *Site {
	return &Site{Service: service, Debug: debug, Now: time.Now}
}

func (s *Site) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/schedule/{student:[0-9]+}/day/{day:[0-9]+}", s.GetDay).Methods(http.MethodGet)
	r.HandleFunc("/schedule/{student:[0-9]+}/{window}", s.GetSchedule).Methods(http.MethodGet)
	r.HandleFunc("/ics/{student:[0-9]+}", s.GetICS).Methods(http.MethodGet)

	return r
}

// Запуск сервера; останавливается при отмене ctx
func (s *Site) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.Debug.Println(err)
		}
	}()
	s.Debug.Printf("site listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (s *Site) GetSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, ok := schedule.ParseWindow(vars["window"])
	if !ok || kind == schedule.DayOfMonth {
		http.Error(w, "Неизвестный период", http.StatusNotFound)

		return
	}
	s.writeSchedule(w, r, vars["student"], schedule.Window{Kind: kind})
}

func (s *Site) GetDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		http.Error(w, "Неверный номер дня", http.StatusBadRequest)

		return
	}
	s.writeSchedule(w, r, vars["student"], schedule.Window{Kind: schedule.DayOfMonth, Day: day})
}

func (s *Site) writeSchedule(w http.ResponseWriter, r *http.Request, student string, window schedule.Window) {
	studentID, err := strconv.ParseInt(student, 10, 64)
	if err != nil {
		http.Error(w, "Неверный ID студента", http.StatusBadRequest)

		return
	}
	text, err := s.Service.GetSchedule(r.Context(), studentID, window, s.Now())
	if err != nil {
		http.Error(w, err.Error(), StatusOf(err))

		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(text)); err != nil {
		s.Debug.Println(err)
	}
}

// HTTP-статус для ошибки получения расписания
func StatusOf(err error) int {
	switch api.KindOf(err) {
	case api.KindInvalidDay:
		return http.StatusBadRequest
	case api.KindTimeout:
		return http.StatusGatewayTimeout
	case api.KindUnknown:
		return http.StatusInternalServerError
	}

	return http.StatusBadGateway
}

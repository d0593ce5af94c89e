package site

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Исходный .ics студента для подписки в календаре
func (s *Site) GetICS(w http.ResponseWriter, r *http.Request) {
	student := mux.Vars(r)["student"]
	studentID, err := strconv.ParseInt(student, 10, 64)
	if err != nil {
		http.Error(w, "Неверный ID студента", http.StatusBadRequest)

		return
	}

	fileContent, err := s.Service.Feed(r.Context(), studentID)
	if err != nil {
		http.Error(w, "Расписание недоступно", StatusOf(err))

		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%d.ics\"", studentID),
	)

	if _, err := w.Write(fileContent); err != nil {
		s.Debug.Println(err)
	}
}

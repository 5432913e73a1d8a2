package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

func serveJSON(cfg *Config, w http.ResponseWriter, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)
	w.WriteHeader(http.StatusOK)

	return w.Write(data)
}

func serveRooms(cfg *Config, reg *Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		written, err := serveJSON(cfg, w, reg.snapshot())
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Room list (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveLeaderboard(cfg *Config, store Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		period := r.URL.Query().Get("period")
		roomType := r.URL.Query().Get("room_type")
		if roomType != "" && !validRoomType(roomType) {
			http.Error(w, "unknown room type", http.StatusBadRequest)

			return
		}

		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "invalid limit", http.StatusBadRequest)

				return
			}
			if parsed < limit {
				limit = parsed
			}
		}

		entries, err := store.Leaderboard(r.Context(), period, roomType, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		written, err := serveJSON(cfg, w, entries)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Leaderboard (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveAnalytics(cfg *Config, store Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		report, err := store.Analytics(r.Context())
		if err != nil {
			http.Error(w, "analytics unavailable", http.StatusInternalServerError)
			errs <- err

			return
		}

		written, err := serveJSON(cfg, w, report)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Analytics (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

// Package main implements the chatclima web server: a JSON chat API for
// Spanish weather and local-time questions.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/chatclima/chatclima/pkg/chatbot"
	"github.com/chatclima/chatclima/pkg/nlp"
	"github.com/chatclima/chatclima/pkg/openweather"
	"github.com/chatclima/chatclima/pkg/tzlookup"
)

var (
	port         = flag.String("port", "8080", "Port for web server (or set PORT)")
	weatherKey   = flag.String("weather-key", "", "OpenWeather API key (or set OPENWEATHER_API_KEY)")
	geminiAPIKey = flag.String("gemini-key", "", "Gemini API key for entity extraction (or set GEMINI_API_KEY)")
	geminiModel  = flag.String("gemini-model", "gemini-2.5-flash-lite", "Gemini model to use")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Show version")
)

const coordinatesPrefix = "@coordenadas:"

type rateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-time.Minute)

	var valid []time.Time
	for _, t := range rl.requests[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	// Rate limit: 30 requests per minute per IP
	if len(valid) >= 30 {
		rl.requests[ip] = valid
		return false
	}

	rl.requests[ip] = append(valid, now)
	return true
}

func main() {
	flag.Parse()

	if *version {
		fmt.Println("chatclima Server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *port == "8080" {
		if env := os.Getenv("PORT"); env != "" {
			*port = env
		}
	}
	if *weatherKey == "" {
		*weatherKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	if *geminiAPIKey == "" {
		*geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	// Log configuration (without exposing sensitive keys)
	logger.Info("Server configuration",
		"port", *port,
		"verbose", *verbose,
		"gemini_model", *geminiModel,
		"has_weather_key", *weatherKey != "",
		"has_gemini_key", *geminiAPIKey != "")

	if *weatherKey == "" {
		logger.Warn("No OpenWeather API key configured; weather and time lookups will fail")
	}

	var analyzer nlp.Analyzer = nlp.NewSpanish()
	if *geminiAPIKey != "" {
		analyzer = nlp.NewGemini(*geminiAPIKey, *geminiModel, logger)
	}

	weatherClient := openweather.NewClient(*weatherKey, logger)
	bot := chatbot.New(analyzer, weatherClient, weatherClient, tzlookup.New(logger), logger)

	server := &server{
		bot:     bot,
		limiter: newRateLimiter(),
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", server.handleStatus)
	mux.HandleFunc("GET /test", server.handleStatus)
	mux.HandleFunc("POST /chat", server.handleChat)
	mux.HandleFunc("OPTIONS /chat", server.handlePreflight)

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           server.wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", *port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

type server struct {
	bot     *chatbot.Chatbot
	limiter *rateLimiter
	logger  *slog.Logger
}

func (s *server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if err := recover(); err != nil {
				clientIP := strings.Split(r.RemoteAddr, ":")[0]
				s.logger.Error("PANIC: Request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", clientIP)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// The chat widget is served from other origins.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

		if r.URL.Path == "/chat" {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		}

		handler.ServeHTTP(w, r)
	})
}

func (s *server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/test" {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Recurso no encontrado"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "Weather Chatbot API is running",
		"endpoints": map[string]string{
			"chat":   "/chat (POST)",
			"test":   "/test (GET)",
			"status": "/ (GET)",
		},
	})
}

type chatRequest struct {
	Mensaje  string   `json:"mensaje"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	clientIP := strings.Split(r.RemoteAddr, ":")[0]
	requestID := w.Header().Get("X-Request-ID")

	if !s.limiter.allow(clientIP) {
		s.logger.Error("Rate limit exceeded",
			"request_id", requestID,
			"client_ip", clientIP)
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("Invalid request body",
			"request_id", requestID,
			"error", err,
			"client_ip", clientIP)
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Formato de solicitud inválido"})
		return
	}

	mensaje := strings.TrimSpace(req.Mensaje)
	if mensaje == "" {
		s.logger.Error("Missing mensaje field",
			"request_id", requestID,
			"client_ip", clientIP)
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Formato de solicitud inválido"})
		return
	}

	s.logger.Info("Chat request",
		"request_id", requestID,
		"client_ip", clientIP,
		"message", mensaje)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if strings.HasPrefix(mensaje, coordinatesPrefix) {
		s.handleCoordinates(ctx, w, req, requestID)
		return
	}

	reply := s.bot.ProcessMessage(ctx, mensaje)

	status := http.StatusOK
	switch reply.Failure {
	case chatbot.FailureInput:
		status = http.StatusBadRequest
	case chatbot.FailureInternal:
		status = http.StatusInternalServerError
	case chatbot.FailureNone:
	}

	var respuesta any
	switch {
	case reply.Weather != nil:
		respuesta = reply.Weather
	case reply.Time != nil:
		respuesta = reply.Time
	default:
		respuesta = reply.Text
	}

	s.logger.Info("Chat request completed",
		"request_id", requestID,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds())
	s.writeJSON(w, status, map[string]any{"respuesta": respuesta})
}

// handleCoordinates serves the device-location path: the client sends
// "@coordenadas:<lat>,<lon>" instead of a question and gets the weather
// payload for that point.
func (s *server) handleCoordinates(ctx context.Context, w http.ResponseWriter, req chatRequest, requestID string) {
	lat, lon, err := parseCoordinates(strings.TrimPrefix(strings.TrimSpace(req.Mensaje), coordinatesPrefix))
	if err != nil {
		s.logger.Error("Invalid coordinates",
			"request_id", requestID,
			"error", err)
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"respuesta": "Formato de coordenadas inválido. Por favor, inténtalo de nuevo.",
		})
		return
	}

	if req.Accuracy != nil {
		s.logger.Info("GPS accuracy reported", "request_id", requestID, "accuracy_m", math.Round(*req.Accuracy))
	}

	result, err := s.bot.WeatherByCoordinates(ctx, lat, lon)
	if err != nil {
		s.logger.Error("Weather by coordinates failed",
			"request_id", requestID,
			"lat", lat,
			"lon", lon,
			"error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"respuesta": "Error al procesar tu ubicación. Por favor, inténtalo de nuevo.",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"respuesta": result})
}

// parseCoordinates parses "lat,lon" and enforces the valid ranges,
// boundary inclusive.
func parseCoordinates(raw string) (lat, lon float64, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("expected lat,lon")
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}
	return lat, lon, nil
}

func (s *server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

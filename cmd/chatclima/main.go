// Package main implements the chatclima CLI: an interactive terminal
// chat for Spanish weather and local-time questions.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/chatclima/chatclima/pkg/chatbot"
	"github.com/chatclima/chatclima/pkg/nlp"
	"github.com/chatclima/chatclima/pkg/openweather"
	"github.com/chatclima/chatclima/pkg/tzlookup"
)

var (
	weatherKey   = flag.String("weather-key", "", "OpenWeather API key (or set OPENWEATHER_API_KEY)")
	geminiAPIKey = flag.String("gemini-key", "", "Gemini API key for entity extraction (or set GEMINI_API_KEY)")
	geminiModel  = flag.String("gemini-model", "gemini-2.5-flash-lite", "Gemini model to use (or set GEMINI_MODEL)")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("chatclima CLI v1.0.0")
		return
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *weatherKey == "" {
		*weatherKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	if *geminiAPIKey == "" {
		*geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if *geminiModel == "gemini-2.5-flash-lite" && os.Getenv("GEMINI_MODEL") != "" {
		*geminiModel = os.Getenv("GEMINI_MODEL")
	}

	if *weatherKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: no OpenWeather API key set; weather and time lookups will fail")
	}

	var analyzer nlp.Analyzer = nlp.NewSpanish()
	if *geminiAPIKey != "" {
		analyzer = nlp.NewGemini(*geminiAPIKey, *geminiModel, logger)
	}

	weatherClient := openweather.NewClient(*weatherKey, logger)
	bot := chatbot.New(analyzer, weatherClient, weatherClient, tzlookup.New(logger), logger)

	// One-shot mode: message given as arguments.
	if args := flag.Args(); len(args) > 0 {
		respond(bot, strings.Join(args, " "))
		return
	}

	repl(bot)
}

func repl(bot *chatbot.Chatbot) {
	title := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.FgGreen, color.Bold)

	title.Println("chatclima — tu asistente del clima")
	fmt.Println("Pregúntame por el clima o la hora en cualquier ciudad. Escribe 'salir' para terminar.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("tú> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "salir" || line == "exit" {
			fmt.Println("¡Hasta luego!")
			return
		}
		respond(bot, line)
	}
}

func respond(bot *chatbot.Chatbot, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply := bot.ProcessMessage(ctx, message)
	switch {
	case reply.Weather != nil:
		printWeather(reply.Weather)
	case reply.Time != nil:
		printTime(reply.Time)
	case reply.Failure != chatbot.FailureNone:
		color.New(color.FgRed).Println(reply.Text)
	default:
		fmt.Println(reply.Text)
	}
}

func printWeather(w *chatbot.WeatherResult) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgHiBlack)

	header.Printf("%s  %s\n", w.Icon, w.Location)
	if w.Description != "" {
		fmt.Printf("   %s\n", w.Description)
	}
	fmt.Printf("   %s %.1f°C (sensación %.1f°C)\n", label.Sprint("Temperatura:"), w.Temp, w.FeelsLike)
	fmt.Printf("   %s %d%%\n", label.Sprint("Humedad:"), w.Humidity)
	fmt.Printf("   %s %.1f km/h\n", label.Sprint("Viento:"), w.WindSpeed)
	fmt.Printf("   %s %d hPa\n", label.Sprint("Presión:"), w.Pressure)
	if w.Time != "" {
		fmt.Printf("   %s %s %s, %s\n", label.Sprint("Hora local:"), w.Time, w.Moment, w.Date)
	}
}

func printTime(t *chatbot.TimeResult) {
	header := color.New(color.FgCyan, color.Bold)

	header.Printf("🕐 %s\n", t.Location)
	fmt.Printf("   Son las %s (%s) %s del %s\n", t.Time, t.Time12, t.Moment, t.Weekday)
	fmt.Printf("   Zona horaria: %s (%s)\n", t.Timezone, t.TimezoneDisplay)
}

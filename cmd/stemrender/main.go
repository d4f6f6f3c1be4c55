package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/stemsprouts/renderer/internal/config"
	"github.com/stemsprouts/renderer/internal/engine"
	"github.com/stemsprouts/renderer/internal/script"
	"github.com/stemsprouts/renderer/internal/server"
	"github.com/stemsprouts/renderer/internal/system"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// .env необязателен: берём настройки из окружения, если файл есть
	if err := godotenv.Load(); err == nil {
		fmt.Println("[*] Загружен .env")
	}

	defaults := config.DefaultRenderSettings()

	hostPtr := flag.String("host", envOr("RENDERER_HOST", "0.0.0.0"), "Адрес HTTP-сервиса")
	portPtr := flag.Int("port", envOrInt("RENDERER_PORT", 5000), "Порт HTTP-сервиса")
	outputPtr := flag.String("output", envOr("RENDERER_OUTPUT_DIR", defaults.OutputDir), "Каталог готовых видео")
	fontPtr := flag.String("font", envOr("RENDERER_FONT", ""), "Путь к TTF-шрифту (если пусто, используется встроенный)")
	widthPtr := flag.Int("width", defaults.Width, "Ширина кадра")
	heightPtr := flag.Int("height", defaults.Height, "Высота кадра")
	fpsPtr := flag.Int("fps", defaults.FPS, "FPS")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки композиции")
	statsPtr := flag.Bool("stats", false, "Печатать отчёт о времени рендера")
	scriptPtr := flag.String("script", "", "YAML-сценарий для разового рендера (без запуска сервера)")

	flag.Parse()

	// Проверяем внешние зависимости до старта
	report, err := system.CheckDependencies()
	if err != nil {
		log.Fatalf("[-] Ошибка окружения: %v", err)
	}

	cfg := defaults
	cfg.Width = *widthPtr
	cfg.Height = *heightPtr
	cfg.FPS = *fpsPtr
	cfg.Workers = *workersPtr
	cfg.FontPath = *fontPtr
	cfg.OutputDir = *outputPtr
	cfg.ShowStats = *statsPtr
	cfg.VideoEncoder = report.VideoEncoder

	if cfg.VideoEncoder != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("[-] Не удалось создать каталог %s: %v", cfg.OutputDir, err)
	}

	project, err := engine.NewRenderProject(cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации пайплайна: %v", err)
	}

	// Разовый режим: рендерим сценарий из файла и выходим
	if *scriptPtr != "" {
		sc, err := script.ReadScenario(*scriptPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения сценария: %v", err)
		}

		result, err := project.Render(context.Background(), *sc)
		if err != nil {
			log.Fatalf("[-] Ошибка рендера: %v", err)
		}
		for _, w := range result.Warnings {
			log.Printf("[!] %s", w)
		}
		fmt.Printf("[+++] Успех! Результат: %s\n", result.OutputPath)
		return
	}

	srvCfg := config.ServerConfig{Host: *hostPtr, Port: *portPtr}
	router := server.NewRouter(project)

	fmt.Printf("[*] Сервис рендера запущен на %s\n", srvCfg.Addr())
	if err := router.Run(srvCfg.Addr()); err != nil {
		log.Fatalf("[-] Ошибка HTTP-сервера: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

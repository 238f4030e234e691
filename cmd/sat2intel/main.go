package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avikram/sat2intel/internal/config"
	"github.com/avikram/sat2intel/internal/geo"
	"github.com/avikram/sat2intel/internal/monitor"
	"github.com/avikram/sat2intel/internal/pipeline"
	"github.com/avikram/sat2intel/internal/report"
	"github.com/avikram/sat2intel/internal/source"
	"github.com/avikram/sat2intel/internal/system"
)

func main() {
	// Optional .env with deployment defaults; absence is not an error.
	_ = godotenv.Load()

	beforePtr := flag.String("before", "", "Путь к базовому снимку (PNG/JPEG/PDF)")
	afterPtr := flag.String("after", "", "Путь к новому снимку (PNG/JPEG/PDF)")
	configPtr := flag.String("config", envStr("SAT2INTEL_CONFIG", ""), "Путь к YAML-конфигу")
	outPtr := flag.String("out", envStr("SAT2INTEL_OUT", "output"), "Директория для отчетов")
	aoiPtr := flag.String("aoi", "aoi-1", "Идентификатор области интереса")

	nwLatPtr := flag.Float64("nw-lat", envFloat("SAT2INTEL_NW_LAT", 0), "Широта северо-западного угла AOI")
	nwLngPtr := flag.Float64("nw-lng", envFloat("SAT2INTEL_NW_LNG", 0), "Долгота северо-западного угла AOI")
	seLatPtr := flag.Float64("se-lat", envFloat("SAT2INTEL_SE_LAT", 0), "Широта юго-восточного угла AOI")
	seLngPtr := flag.Float64("se-lng", envFloat("SAT2INTEL_SE_LNG", 0), "Долгота юго-восточного угла AOI")

	windowPtr := flag.Int("window", 0, "Размер окна SSIM (0 - из конфига)")
	thresholdPtr := flag.Float64("threshold", 0, "Порог разности в (0,1) (0 - из конфига)")
	minAreaPtr := flag.Int("min-area", 0, "Минимальная площадь региона, px (0 - из конфига)")
	dpiPtr := flag.Int("dpi", 0, "DPI рендеринга PDF-снимков (0 - из конфига)")

	qrPtr := flag.Bool("qr", false, "Записать QR-код координат главной аномалии")
	statsPtr := flag.Bool("stats", false, "Показать отчет о ресурсах после выполнения")
	watchPtr := flag.Bool("watch", false, "Режим мониторинга локаций из конфига")
	intervalPtr := flag.Int("interval", 0, "Интервал опроса в секундах (0 - из конфига)")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		cfg = loaded
	}

	if *windowPtr > 0 {
		cfg.WindowSize = *windowPtr
	}
	if *thresholdPtr > 0 {
		cfg.DiffThreshold = *thresholdPtr
	}
	if *minAreaPtr > 0 {
		cfg.MinRegionArea = *minAreaPtr
	}
	if *dpiPtr > 0 {
		cfg.DPI = *dpiPtr
	}
	if *intervalPtr > 0 {
		cfg.IntervalSec = *intervalPtr
	}
	if *outPtr != "" {
		cfg.OutputDir = *outPtr
	}
	if *qrPtr {
		cfg.WriteQR = true
	}
	if *statsPtr {
		cfg.ShowStats = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	os.MkdirAll(cfg.OutputDir, 0755)

	if *watchPtr {
		runWatch(cfg)
		return
	}

	if *beforePtr == "" || *afterPtr == "" {
		log.Fatalf("[-] Укажите -before и -after (или -watch с конфигом)")
	}

	bounds := geo.Bounds{
		NorthWest: geo.Coordinate{Lat: *nwLatPtr, Lng: *nwLngPtr},
		SouthEast: geo.Coordinate{Lat: *seLatPtr, Lng: *seLngPtr},
	}

	start := time.Now()

	fmt.Printf("[*] Базовый снимок: %s\n", *beforePtr)
	before, err := source.Load(*beforePtr, cfg.DPI)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки снимка: %v", err)
	}

	fmt.Printf("[*] Новый снимок: %s\n", *afterPtr)
	after, err := source.Load(*afterPtr, cfg.DPI)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки снимка: %v", err)
	}

	rep, err := pipeline.Analyze(before, after, *aoiPtr, bounds, cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка анализа: %v", err)
	}

	if err := writeOutputs(cfg, *aoiPtr, rep); err != nil {
		log.Fatalf("[-] Ошибка записи отчета: %v", err)
	}

	fmt.Println(rep.Text())

	if cfg.ShowStats {
		fmt.Println(system.RunStats(time.Since(start), 1))
	}
}

// runWatch drives the monitor until SIGINT/SIGTERM.
func runWatch(cfg *config.Config) {
	if len(cfg.Locations) == 0 {
		log.Fatalf("[-] В режиме -watch нужен конфиг со списком locations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	var analyses atomic.Int64

	// Locations are polled concurrently, so the publisher must be
	// goroutine-safe.
	watcher := monitor.NewWatcher(monitor.NewMemStore(), cfg, func(loc config.Location, rep *report.AnalysisReport) {
		analyses.Add(1)
		fmt.Printf("[*] %s: %d аномалий, уровень %s\n", loc.ID, rep.Summary.TotalRegions, orNone(string(rep.Summary.HighestLevel)))
		if err := writeOutputs(cfg, loc.ID, rep); err != nil {
			log.Printf("[!] %s: ошибка записи отчета: %v", loc.ID, err)
		}
	})
	watcher.OnError = func(loc config.Location, err error) {
		log.Printf("[!] %s: %v", loc.ID, err)
	}

	fmt.Printf("[*] Мониторинг %d локаций, интервал %ds\n", len(cfg.Locations), cfg.IntervalSec)

	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("[-] Ошибка мониторинга: %v", err)
	}

	fmt.Println("[*] Мониторинг остановлен")
	if cfg.ShowStats {
		fmt.Println(system.RunStats(time.Since(start), int(analyses.Load())))
	}
}

// writeOutputs emits the YAML report, the GeoJSON overlay and, when
// configured, the QR code for the top finding.
func writeOutputs(cfg *config.Config, aoi string, rep *report.AnalysisReport) error {
	stamp := rep.GeneratedAt.Format("2006-01-02_15-04-05")
	base := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s", aoi, stamp))

	if err := report.Write(rep, base+".yaml"); err != nil {
		return err
	}
	if err := report.WriteGeoJSON(rep, base+".geojson"); err != nil {
		return err
	}
	if cfg.WriteQR && len(rep.Findings) > 0 {
		if err := report.WriteQR(rep, base+"_qr.png"); err != nil {
			return err
		}
	}

	fmt.Printf("[*] Отчет: %s.yaml\n", base)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "NONE"
	}
	return s
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

package system

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit: длинные рендеры держат
// открытыми pipe'ы ffmpeg и файлы артефактов одновременно.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// Report describes the environment the renderer starts in.
type Report struct {
	FFmpegPath   string
	VideoEncoder string
	CPUCount     int
	FreeMemoryMB uint64
}

// CheckDependencies verifies the external collaborators before the
// façade starts and prints the checklist. ffmpeg отсутствует — сервис
// не стартует.
func CheckDependencies() (*Report, error) {
	report := &Report{}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		fmt.Println("✗ ffmpeg - MISSING")
		return nil, fmt.Errorf("ffmpeg не найден в PATH: %w", err)
	}
	fmt.Printf("✓ ffmpeg (%s)\n", ffmpegPath)
	report.FFmpegPath = ffmpegPath

	report.VideoEncoder = GetBestH264Encoder()
	fmt.Printf("✓ видеокодек: %s\n", report.VideoEncoder)

	if count, err := cpu.Counts(true); err == nil {
		report.CPUCount = count
		fmt.Printf("✓ CPU: %d логических ядер\n", count)
	} else {
		log.Printf("[!] Не удалось опросить CPU: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		report.FreeMemoryMB = vm.Available / (1024 * 1024)
		fmt.Printf("✓ Память: %d MB доступно\n", report.FreeMemoryMB)
		// Full HD таймлайн легко занимает гигабайты: предупредим заранее
		if report.FreeMemoryMB < 2048 {
			log.Printf("[!] Мало свободной памяти (%d MB), длинные рендеры могут не пройти", report.FreeMemoryMB)
		}
	} else {
		log.Printf("[!] Не удалось опросить память: %v", err)
	}

	return report, nil
}

// GetBestH264Encoder probes ffmpeg for hardware h264 encoders and falls
// back to libx264.
func GetBestH264Encoder() string {
	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}

	for _, enc := range encoders {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

package middleware

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// endpointsBanner rutas mostradas al arrancar
var endpointsBanner = []struct{ method, path, desc string }{
	{"POST", "/api/login", "Connexion"},
	{"POST", "/api/enregistrer", "Enregistrer un mouvement"},
	{"GET ", "/api/planning", "Planning"},
	{"GET ", "/api/entree", "Registre des entrées"},
	{"GET ", "/api/sortie", "Registre des sorties"},
	{"GET ", "/api/total_palettes", "Stock sur quai par jour"},
	{"GET ", "/api/stats", "Statistiques"},
	{"GET ", "/api/export", "Export xlsx"},
	{"GET ", "/api/ws/stats", "Tableau de bord (WebSocket)"},
}

// ServerInfo muestra información del servidor al iniciar
func ServerInfo(port, driver string, logger *zap.Logger) {
	hostname, _ := os.Hostname()
	goVersion := runtime.Version()
	numCPU := runtime.NumCPU()
	startTime := time.Now().Format("2006-01-02 15:04:05")

	fmt.Println("")
	fmt.Println("🚀 " + boldColor + "Pallet Service API" + resetColor)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("📅 Started at: " + startTime)
	fmt.Println("🌐 Server URL: " + cyanColor + "http://localhost:" + port + resetColor)
	fmt.Println("💻 Hostname: " + hostname)
	fmt.Println("🔧 Go Version: " + goVersion)
	fmt.Printf("⚡ CPU Cores: %d\n", numCPU)
	fmt.Println("")
	fmt.Println("📊 " + boldColor + "Available Endpoints:" + resetColor)
	for _, e := range endpointsBanner {
		fmt.Printf("   %s %s%-22s%s - %s\n", e.method, greenColor, e.path, resetColor, e.desc)
	}
	fmt.Println("")
	fmt.Println("🔍 " + boldColor + "Monitoring:" + resetColor)
	fmt.Println("   📈 Health Check: " + cyanColor + "http://localhost:" + port + "/health" + resetColor)
	fmt.Println("   📉 Metrics: " + cyanColor + "http://localhost:" + port + "/api/monitoring/metrics" + resetColor)
	fmt.Println("")
	fmt.Println("⚙️  " + boldColor + "Environment:" + resetColor)
	fmt.Println("   🗄️  Database: " + driver)
	fmt.Println("   🗃️  Sessions: Redis")
	fmt.Println("   📝 Logging: Structured (Zap)")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("✨ " + boldColor + "Server is ready to handle requests!" + resetColor)
	fmt.Println("")

	logger.Info("Server started successfully",
		zap.String("port", port),
		zap.String("driver", driver),
		zap.String("hostname", hostname),
		zap.String("go_version", goVersion),
		zap.Int("cpu_cores", numCPU),
		zap.String("start_time", startTime),
	)
}

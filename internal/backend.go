package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/mppt2go/internal/actuators"
	"github.com/markusressel/mppt2go/internal/api"
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/controller"
	"github.com/markusressel/mppt2go/internal/hwmon"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/persistence"
	"github.com/markusressel/mppt2go/internal/power"
	"github.com/markusressel/mppt2go/internal/sensors"
	"github.com/markusressel/mppt2go/internal/statistics"
	"github.com/markusressel/mppt2go/internal/telemetry"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/markusressel/mppt2go/internal/wind"
	"github.com/oklog/run"
)

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Fatal("Driving the load switch outputs requires root permissions, please run mppt2go as root")
	}

	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	actuator, windSource := InitializeObjects()

	sensorId := configuration.CurrentConfig.Controller.Sensor
	sensor, exists := sensors.SensorMap.Get(sensorId)
	if !exists {
		ui.Fatal("Controller sensor not found: %s", sensorId)
	}

	powerConfig := configuration.CurrentConfig.Power
	estimator := power.NewEstimator(
		load.NewCodec(powerConfig.ClosedSwitchResistance),
		powerConfig.VoltageDividerScale,
	)

	controllerConfig := configuration.CurrentConfig.Controller
	loadController := controller.NewLoadController(
		sensor,
		actuator,
		estimator,
		controllerConfig.TickRate,
		load.State(controllerConfig.InitialLoadState),
		controllerConfig.InitialRisingCycle,
	)

	statistics.Register(statistics.NewControllerCollector(loadController))
	statistics.Register(statistics.NewWindCollector(windSource))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addr := fmt.Sprintf(":%d", port)

			metricsServer := echo.New()
			metricsServer.HideBanner = true
			metricsServer.Use(echoprometheus.NewMiddleware("mppt2go"))
			metricsServer.GET("/metrics", echoprometheus.NewHandler())

			g.Add(func() error {
				if err := metricsServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := metricsServer.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST Api
			apiConfig := configuration.CurrentConfig.Api
			addr := fmt.Sprintf("%s:%d", apiConfig.Host, apiConfig.Port)

			restServer := api.CreateRestService(loadController, windSource)

			g.Add(func() error {
				if err := restServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping api server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restServer.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping api server: %v", err)
				} else {
					ui.Info("Api server stopped.")
				}
			})
		}
	}
	{
		// === sensor monitoring
		pollingRate := configuration.CurrentConfig.SensorPollingRate
		for item := range sensors.SensorMap.IterBuffered() {
			s := item.Val
			mon := NewSensorMonitor(s, pollingRate)

			g.Add(func() error {
				err := mon.Run(ctx)
				ui.Info("Sensor Monitor for sensor %s stopped.", s.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error monitoring sensor: %v", err)
				}
			})
		}
	}
	{
		// === wind measurement
		if anemometer, ok := windSource.(*wind.Anemometer); ok {
			watcher := wind.NewEdgeWatcher(anemometer.Config.Pin, anemometer.Pulses)

			g.Add(func() error {
				err := watcher.Run(ctx)
				ui.Info("Anemometer edge watcher stopped.")
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Error watching anemometer pin: %v", err)
				}
			})
		}
	}
	{
		// === load controller
		g.Add(func() error {
			err := loadController.Run(ctx)
			ui.Info("Load controller stopped.")
			if err != nil {
				panic(err)
			}
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		// === telemetry recorder
		recorder := telemetry.NewRecorder(
			windSource,
			loadController,
			pers,
			configuration.CurrentConfig.Telemetry,
		)

		g.Add(func() error {
			err := recorder.Run(ctx)
			ui.Info("Telemetry recorder stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error recording telemetry: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, os.Kill)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func InitializeObjects() (actuators.Actuator, wind.Source) {
	var chips []*hwmon.HwMonController
	if containsHwMonSensors() {
		chips = hwmon.GetChips()
	}

	var sensorList []sensors.Sensor
	for _, config := range configuration.CurrentConfig.Sensors {
		if config.HwMon != nil {
			found := false
			for _, c := range chips {
				matched, err := regexp.MatchString("(?i)"+config.HwMon.Platform, c.Platform)
				if err != nil {
					ui.Fatal("Failed to match platform regex of %s (%s) against chip platform %s", config.ID, config.HwMon.Platform, c.Platform)
				}
				if matched && len(c.Sensors) >= config.HwMon.Index {
					found = true
					config.HwMon.VoltageInput = c.Sensors[config.HwMon.Index-1].Input
				}
			}
			if !found {
				ui.Fatal("Couldn't find hwmon device with platform '%s' for sensor: %s. Run 'mppt2go detect' again and correct any mistake.", config.HwMon.Platform, config.ID)
			}
		}

		sensor, err := sensors.NewSensor(config)
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %s", config.ID)
		}
		sensorList = append(sensorList, sensor)

		currentValue, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Error reading sensor %s: %v", config.ID, err)
		}
		sensor.SetMovingAvg(currentValue)

		sensors.SensorMap.Set(config.ID, sensor)
	}

	sensorCollector := statistics.NewSensorCollector(sensorList)
	statistics.Register(sensorCollector)

	actuatorConfig := configuration.CurrentConfig.Actuator
	actuator, err := actuators.NewActuator(actuatorConfig)
	if err != nil {
		ui.Fatal("Unable to process actuator configuration: %s", actuatorConfig.ID)
	}
	actuators.ActuatorMap.Set(actuatorConfig.ID, actuator)

	windSource, err := wind.NewSource(configuration.CurrentConfig.Wind)
	if err != nil {
		ui.Warning("No wind source configured, wind telemetry will report zero values")
		windSource = wind.NewDisabledSource()
	}

	return actuator, windSource
}

func containsHwMonSensors() bool {
	for _, config := range configuration.CurrentConfig.Sensors {
		if config.HwMon != nil {
			return true
		}
	}
	return false
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}

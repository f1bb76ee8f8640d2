// Package app runs the fyne desktop application on top of an opened ledger.
package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"tenant-ledger/internal/controllers"
	"tenant-ledger/internal/ledger"
	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/views"
)

const (
	AppName         = "Tenant Ledger"
	AppID           = "com.tenantledger.desktop"
	AppVersion      = "1.0.0"
	MinWindowWidth  = 900
	MinWindowHeight = 600
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	ledger     *ledger.Ledger
	controller *controllers.MainController
	view       *views.MainView
	lifecycle  *Lifecycle
	log        logger.Logger
}

func NewApplication(l *ledger.Ledger) (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	cfg := l.Config
	window.Resize(windowSize(cfg.Window.Width, cfg.Window.Height))
	window.SetFixedSize(false)
	window.CenterOnScreen()
	window.SetMaster()

	l.Log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  cfg.Window.Width,
		"window_height": cfg.Window.Height,
	})

	controller := controllers.NewMainController(l.Services, cfg.CurrencySymbol, l.Log, nil)
	controller.SetContext(l.Shutdown.Context())

	view := views.NewMainView(window, controller, views.Options{
		Currency:   cfg.CurrencySymbol,
		WindowDays: cfg.Reminders.WindowDays,
	})

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		ledger:     l,
		controller: controller,
		view:       view,
		lifecycle:  NewLifecycle(l.Shutdown, l.Log, fyneApp.Quit),
		log:        l.Log,
	}

	l.Log.Info("Application", "initialization complete", nil)
	return application, nil
}

func windowSize(width, height float32) fyne.Size {
	if width < MinWindowWidth {
		width = MinWindowWidth
	}
	if height < MinWindowHeight {
		height = MinWindowHeight
	}
	return fyne.NewSize(width, height)
}

// Run shows the window and blocks until the application quits.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.lifecycle.Start()
	a.fyneApp.Lifecycle().SetOnStarted(a.controller.Start)

	a.window.Show()
	a.log.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

// Run opens the GUI on l. It is the default action of the command line.
func Run(l *ledger.Ledger) error {
	application, err := NewApplication(l)
	if err != nil {
		return err
	}
	return application.Run()
}

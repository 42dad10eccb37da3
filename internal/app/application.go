package app

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"splitpeek/internal/codec"
	"splitpeek/internal/config"
	"splitpeek/internal/controllers"
	"splitpeek/internal/gui"
	"splitpeek/internal/logger"
	"splitpeek/internal/models"
	"splitpeek/internal/pipeline"
	"splitpeek/internal/raster"
	"splitpeek/internal/resources"
	"splitpeek/internal/services"
	"splitpeek/internal/shutdown"
)

const (
	AppName    = "SplitPeek"
	AppID      = "com.imagetools.splitpeek"
	AppVersion = "1.0.0"
)

// Application wires the GUI, the controllers and the conversion pipeline into
// one running instance.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	log     logger.Logger

	session  *models.Session
	registry *resources.Registry
	decoder  *raster.Decoder

	params *controllers.Parameters
	zoom   *controllers.Zoom
	slider *controllers.Slider

	coordinator *pipeline.Coordinator
	ingestor    *services.Ingestor
	exporter    *services.Exporter

	view       *gui.MainView
	shutdownMg *shutdown.Manager
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":       AppVersion,
		"window_width":  cfg.WindowWidth,
		"window_height": cfg.WindowHeight,
	})

	registry := resources.NewRegistry(log)
	decoder := raster.NewDecoder(cfg.AvifdecPath)
	encoders := codec.NewRegistry(cfg.AvifencPath)
	engine := pipeline.NewRasterEngine(decoder, encoders, log)

	a := &Application{
		fyneApp:     fyneApp,
		window:      window,
		log:         log,
		session:     models.NewSession(),
		registry:    registry,
		decoder:     decoder,
		slider:      controllers.NewSlider(),
		coordinator: pipeline.NewCoordinator(engine, registry, log),
		ingestor:    services.NewIngestor(log),
		exporter:    services.NewExporter(log),
		shutdownMg:  shutdown.NewManager(log),
	}

	a.params = controllers.NewParameters(a.handleParameterChange)
	a.zoom = controllers.NewZoom(a.handleZoomChange)

	a.view = gui.NewMainView(window, gui.ControlCallbacks{
		OnOpen:          a.handleOpen,
		OnFormatChange:  a.params.SetFormat,
		OnQualityChange: a.params.SetQuality,
		OnZoomIn:        func() { a.zoom.In() },
		OnZoomOut:       func() { a.zoom.Out() },
		OnZoomFit:       func() { a.zoom.Fit() },
		OnReset:         a.handleReset,
		OnDownload:      a.handleDownload,
	}, a.slider)

	a.coordinator.SetOnConverted(a.handleConverted)
	a.coordinator.SetOnFailed(a.handleConversionFailed)

	window.SetOnDropped(a.handleDrop)

	a.shutdownMg.Register("resource registry", registry)
	a.shutdownMg.Listen()

	log.Info("Application", "initialization complete", nil)
	return a, nil
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.window.SetOnDropped(nil)
		a.shutdownMg.Shutdown()
		a.window.Close()
	})

	a.view.Show()
	a.fyneApp.Run()
	return nil
}

func (a *Application) handleOpen() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.view.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		go func() {
			src, err := a.ingestor.FromURIReader(reader)
			if err != nil {
				a.view.ShowError(err)
				return
			}
			a.loadSource(src)
		}()
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter(services.AcceptedExtensions))
	d.Show()
}

func (a *Application) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	uri := uris[0]
	go func() {
		src, err := a.ingestor.FromURI(uri)
		if err != nil {
			a.view.ShowError(err)
			return
		}
		a.loadSource(src)
	}()
}

// loadSource installs a freshly ingested image as the session source and
// kicks off the first conversion with the inferred defaults.
func (a *Application) loadSource(src *models.SourceImage) {
	preview := a.previewOf(src.Data)
	if preview == nil {
		a.view.ShowError(fmt.Errorf("cannot decode %s for preview", src.Name))
		a.view.UpdateStatus("Cannot preview " + src.Name)
		return
	}

	// Invalidate in-flight conversions of the previous source and drop its
	// converted locator; publishing the new original revokes the old one.
	a.coordinator.Reset()
	src.Locator = a.registry.Publish(resources.RoleOriginal, src.Name, src.Data)
	a.session.SetSource(src)

	a.params.ResetFor(src.Subtype())
	a.slider.SetPosition(controllers.InitialSplit)
	a.zoom.Fit()

	format, quality := a.params.Snapshot()
	a.view.ShowSource(src, preview)
	fyne.Do(func() {
		a.view.Controls().SetParameters(format, quality)
	})

	a.view.UpdateStatus(fmt.Sprintf("Converting to %s at %.2f...", format, quality))
	a.coordinator.Trigger(src, format, quality)
}

// handleParameterChange reruns the conversion whenever the target format or
// quality moves. Parameters are captured here so the request never reads live
// widget state.
func (a *Application) handleParameterChange(format codec.Format, quality float64) {
	src := a.session.Source()
	if src == nil {
		return
	}
	a.view.UpdateStatus(fmt.Sprintf("Converting to %s at %.2f...", format, quality))
	a.coordinator.Trigger(src, format, quality)
}

func (a *Application) handleZoomChange(scale float64) {
	a.view.SetZoom(scale)
}

// handleConverted runs on the conversion goroutine, in publish order. The
// preview is decoded from the published locator, never from the raw result,
// so the display and the registry agree about which bytes are live.
func (a *Application) handleConverted(img *models.ConvertedImage) {
	data, ok := a.registry.Bytes(img.Locator)
	if !ok {
		return
	}
	preview := a.previewOf(data)

	a.session.SetConverted(img)
	a.view.ShowConverted(img, preview)

	if preview == nil {
		a.view.UpdateStatus(fmt.Sprintf("Converted to %s, preview unavailable", img.Format))
		return
	}
	a.view.UpdateStatus(fmt.Sprintf("%s at %.2f: %s",
		img.Format, img.Quality, models.FormatByteSize(img.Size)))
}

func (a *Application) handleConversionFailed(err error) {
	a.view.UpdateStatus(fmt.Sprintf("Conversion failed (%v), keeping previous result", err))
}

func (a *Application) handleReset() {
	a.coordinator.Reset()
	a.registry.Reset()
	a.session.Clear()
	a.slider.SetPosition(controllers.InitialSplit)
	a.zoom.Fit()
	a.view.ShowEmpty()
	a.log.Info("Application", "session reset", nil)
}

// handleDownload exports through the live converted locator, the same
// reference the rest of the UI renders.
func (a *Application) handleDownload() {
	locator, ok := a.registry.Live(resources.RoleConverted)
	if !ok {
		a.view.UpdateStatus("Nothing to download yet")
		return
	}
	res, ok := a.registry.Resource(locator)
	if !ok {
		a.view.UpdateStatus("Nothing to download yet")
		return
	}
	format, _ := a.params.Snapshot()

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.view.ShowError(err)
			return
		}
		if writer == nil {
			return
		}
		go func() {
			if err := a.exporter.Save(writer, res); err != nil {
				a.view.ShowError(err)
				return
			}
			a.view.UpdateStatus("Saved " + writer.URI().Name())
		}()
	}, a.window)
	d.SetFileName(services.SuggestedName(format))
	d.Show()
}

// previewOf decodes encoded bytes into a displayable image, or nil when the
// bytes cannot be decoded locally.
func (a *Application) previewOf(data []byte) image.Image {
	frame, err := a.decoder.Decode(data)
	if err != nil {
		a.log.Warning("Application", "preview decode failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	defer frame.Close()

	img, err := frame.Image()
	if err != nil {
		a.log.Warning("Application", "preview conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return img
}

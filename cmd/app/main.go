package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/0x0FACED/go-voronoi/pkg/render"
	"github.com/0x0FACED/go-voronoi/pkg/stations"

	"github.com/tdewolff/argp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Serve - http сервер со страницей диаграммы
type Serve struct {
	Addr     string `short:"a" default:":8080" desc:"Listen address"`
	Width    int    `short:"W" default:"1000" desc:"Diagram width"`
	Height   int    `short:"H" default:"1000" desc:"Diagram height"`
	Stations int    `short:"n" default:"12" desc:"Number of stations"`
	Random   bool   `short:"r" desc:"Random stations instead of a grid"`
	Seed     int64  `short:"s" default:"1" desc:"Seed for random stations"`
}

// Render - построить диаграмму один раз и записать в файл
type Render struct {
	Output   string `short:"o" desc:"Output file (.png, .svg or .geojson)"`
	Width    int    `short:"W" default:"1000" desc:"Diagram width"`
	Height   int    `short:"H" default:"1000" desc:"Diagram height"`
	Stations int    `short:"n" default:"12" desc:"Number of stations"`
	Random   bool   `short:"r" desc:"Random stations instead of a grid"`
	Seed     int64  `short:"s" default:"1" desc:"Seed for random stations"`
	Sites    string `short:"p" desc:"Stations as x,y;x,y instead of generated ones"`
}

func main() {
	root := argp.NewCmd(&Serve{}, "Voronoi diagram (Fortune's sweep) server and renderer")
	root.AddCmd(&Render{}, "render", "Render a diagram to a file")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Serve) Run() error {
	log := logger.NewWriter(os.Stderr, zapcore.InfoLevel)
	defer log.Sync()

	srv := newServer(params{
		Width:    cmd.Width,
		Height:   cmd.Height,
		Stations: cmd.Stations,
		Random:   cmd.Random,
		Seed:     cmd.Seed,
	}, log)

	log.Info("Сервер запущен", zap.String("addr", cmd.Addr))
	if err := http.ListenAndServe(cmd.Addr, srv.routes()); err != nil {
		log.Error("Err ListenAndServe", zap.Error(err))
		return err
	}
	return nil
}

func (cmd *Render) Run() error {
	if cmd.Output == "" {
		fmt.Println("ERROR: must specify output filename")
		return argp.ShowUsage
	}
	ext := strings.ToLower(filepath.Ext(cmd.Output))
	if ext != ".png" && ext != ".svg" && ext != ".geojson" {
		fmt.Println("ERROR: output must be .png, .svg or .geojson")
		return argp.ShowUsage
	}

	log := logger.NewWriter(os.Stderr, zapcore.InfoLevel)
	defer log.Sync()

	p := params{
		Width:    cmd.Width,
		Height:   cmd.Height,
		Stations: cmd.Stations,
		Random:   cmd.Random,
		Seed:     cmd.Seed,
	}
	if cmd.Sites != "" {
		sites, err := stations.Parse(cmd.Sites)
		if err != nil {
			return err
		}
		p.Sites = sites
	}
	sites, box := p.sites()
	d, err := build(sites, box, log)
	if err != nil {
		return err
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case ".png":
		err = render.PNG(f, sites, d, box)
	case ".svg":
		err = render.SVG(f, sites, d, box)
	default:
		var data []byte
		if data, err = render.MarshalGeoJSON(sites, d); err == nil {
			_, err = f.Write(data)
		}
	}
	if err != nil {
		return err
	}
	log.Info("Диаграмма записана", zap.String("output", cmd.Output), zap.Int("segments", len(d.Segments)))
	return f.Close()
}

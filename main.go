package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/motiontx/api"
	"github.com/matt-g-everett/motiontx/motion"
	"github.com/matt-g-everett/motiontx/paint"
	"github.com/matt-g-everett/motiontx/play"
	"github.com/matt-g-everett/motiontx/scene"
)

type config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Scene      string `yaml:"scene"`
	Assets     string `yaml:"assets"`
	Transition string `yaml:"transition"`
	Listen     string `yaml:"listen"`
	Surface    struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"surface"`
	Loop  bool    `yaml:"loop"`
	Speed float64 `yaml:"speed"`
}

type app struct {
	Config config
	Client mqtt.Client
	Driver *play.Driver
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	a.Driver.Play()
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&a.Config)
	if err != nil {
		panic(err)
	}

	if a.Config.Listen == "" {
		a.Config.Listen = ":3000"
	}
	if a.Config.Surface.Width == 0 {
		a.Config.Surface.Width = 512
	}
	if a.Config.Surface.Height == 0 {
		a.Config.Surface.Height = 512
	}
	if a.Config.Speed == 0 {
		a.Config.Speed = 1
	}
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config and the scene
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	sc, err := scene.Load(a.Config.Scene)
	if err != nil {
		panic(err)
	}
	model := motion.Build(sc)

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("motiontx").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	surface := paint.NewSurface(a.Config.Surface.Width, a.Config.Surface.Height)
	painter := paint.NewPainter(paint.NewDirAssets(a.Config.Assets))
	streamer := paint.NewStreamer(a.Client, a.Config.Mqtt.Topics.Stream, surface, painter)

	a.Driver = play.NewDriver(sc, model, a.Config.Transition, streamer, play.NewTimerScheduler())
	a.Driver.SetLoop(a.Config.Loop)
	a.Driver.SetSpeed(a.Config.Speed)
	painter.SetRepaint(func() {
		a.Driver.Seek(a.Driver.Elapsed())
	})

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}

	server := api.NewServer(a.Driver, a.Config.Listen)
	g := new(errgroup.Group)
	g.Go(server.Serve)
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

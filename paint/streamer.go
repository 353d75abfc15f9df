package paint

import (
	"log"

	"github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/motiontx/scene"
)

// A Streamer paints evaluated snapshots onto its surface and publishes
// the finished frame as binary over MQTT to a remote display.
type Streamer struct {
	client  mqtt.Client
	topic   string
	surface *Surface
	painter *Painter
}

// NewStreamer creates a Streamer that publishes painted frames on topic.
func NewStreamer(client mqtt.Client, topic string, surface *Surface, painter *Painter) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.surface = surface
	s.painter = painter
	return s
}

// Surface returns the streamer's paint target.
func (s *Streamer) Surface() *Surface {
	return s.surface
}

// Paint renders one frame and sends it. It implements the playback
// driver's adapter contract.
func (s *Streamer) Paint(nodes []*scene.Node, background string) {
	s.painter.Paint(s.surface, nodes, background)
	data, err := s.surface.MarshalBinary()
	if err != nil {
		log.Printf("frame marshal failed: %v", err)
		return
	}
	token := s.client.Publish(s.topic, 2, false, data)
	token.Wait()
}

package steplib

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

const kafkaConsumeTimeout = 10 * time.Second

// KafkaSteps returns publish/consume steps bound to the named resource.
func KafkaSteps(name string) *basil.Registry[World] {
	r := basil.NewRegistry[World]()

	r.WhenPattern(fmt.Sprintf(`^I publish message to "%s" topic "([^"]*)":$`, name),
		func(w *World, captures []string, step *feature.Step) error {
			producer, ok := w.KafkaProducers[name]
			if !ok {
				return fmt.Errorf("kafka resource %q is not configured", name)
			}
			_, _, err := producer.SendMessage(&sarama.ProducerMessage{
				Topic: captures[1],
				Value: sarama.StringEncoder(step.DocString),
			})
			if err != nil {
				return fmt.Errorf("publishing to topic %q: %w", captures[1], err)
			}
			return nil
		})

	r.WhenPattern(fmt.Sprintf(`^I consume a message from "%s" topic "([^"]*)"$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			consumer, ok := w.KafkaConsumers[name]
			if !ok {
				return fmt.Errorf("kafka resource %q is not configured", name)
			}
			pc, err := consumer.ConsumePartition(captures[1], 0, sarama.OffsetOldest)
			if err != nil {
				return fmt.Errorf("consuming topic %q: %w", captures[1], err)
			}
			defer pc.Close()

			select {
			case msg := <-pc.Messages():
				w.lastKafkaMessage = msg.Value
				return nil
			case err := <-pc.Errors():
				return fmt.Errorf("consuming topic %q: %w", captures[1], err)
			case <-time.After(kafkaConsumeTimeout):
				return fmt.Errorf("no message on topic %q after %s", captures[1], kafkaConsumeTimeout)
			}
		})

	r.ThenPattern(fmt.Sprintf(`^the last message from "%s" should contain "([^"]*)"$`, name),
		func(w *World, captures []string, _ *feature.Step) error {
			if w.lastKafkaMessage == nil {
				return fmt.Errorf("no message has been consumed from %q", name)
			}
			if !strings.Contains(string(w.lastKafkaMessage), captures[1]) {
				return fmt.Errorf("last message %q does not contain %q", w.lastKafkaMessage, captures[1])
			}
			return nil
		})

	r.ThenPattern(fmt.Sprintf(`^the last message from "%s" should match JSON:$`, name),
		func(w *World, _ []string, step *feature.Step) error {
			if w.lastKafkaMessage == nil {
				return fmt.Errorf("no message has been consumed from %q", name)
			}
			return matchJSON(w.lastKafkaMessage, []byte(step.DocString))
		})

	return r
}

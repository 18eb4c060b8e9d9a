package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/dinepos/internal/messaging/kafka"
)

// deadLetterValue собирает сообщение в том виде, в котором outbox worker
// кладёт его в DLQ-топик.
func deadLetterValue(t *testing.T, outboxID, aggregateType, aggregateID, eventType string, original any) []byte {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"outbox_id":        outboxID,
		"aggregate_type":   aggregateType,
		"aggregate_id":     aggregateID,
		"event_type":       eventType,
		"payload":          original,
		"publish_error":    "kafka: broker not available",
		"attempts":         3,
		"dlq_published_at": "2026-02-11T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("marshal dead letter: %v", err)
	}
	return raw
}

func orderDeadLetter(t *testing.T, outboxID, orderID string) []byte {
	t.Helper()
	return deadLetterValue(t, outboxID, kafka.AggregateTypeOrder, orderID, string(kafka.EventTypeOrderStatusChanged),
		map[string]any{"event_type": "order.status_changed", "order_id": 42, "table_id": 5, "status": "MEAL"})
}

func tableDeadLetter(t *testing.T, outboxID, tableID string) []byte {
	t.Helper()
	return deadLetterValue(t, outboxID, kafka.AggregateTypeTable, tableID, string(kafka.EventTypeTableReleased),
		map[string]any{"event_type": "table.released", "table_id": 7, "empty": true})
}

func headerValue(msg *sarama.ProducerMessage, key string) (string, bool) {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value), true
		}
	}
	return "", false
}

// Сквозной сценарий: два раздела DLQ с заказом и столом, execute-режим.
// Каждое сообщение уходит в топик своего агрегата с заголовками провенанса.
func TestRunReplay_ExecuteRoutesPerAggregate(t *testing.T) {
	client := &fakeOffsetClient{
		partitions: []int32{0, 1},
		ranges: map[int32]offsetRange{
			0: {oldest: 0, newest: 1},
			1: {oldest: 0, newest: 1},
		},
	}
	consumer := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(&sarama.ConsumerMessage{Topic: kafka.TopicDeadLetterQueue, Partition: 0, Offset: 0, Value: orderDeadLetter(t, "out-1", "42")}),
			1: drainedConsumer(&sarama.ConsumerMessage{Topic: kafka.TopicDeadLetterQueue, Partition: 1, Offset: 0, Value: tableDeadLetter(t, "out-2", "7")}),
		},
	}
	producer := &recordingProducer{}

	cfg := config{
		sourceTopic: kafka.TopicDeadLetterQueue,
		fallback:    kafka.TopicOrderEvents,
		limit:       10,
		execute:     true,
		idleTimeout: 20 * time.Millisecond,
	}

	if err := runReplay(context.Background(), cfg, client, consumer, producer); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}
	if len(producer.sent) != 2 {
		t.Fatalf("expected 2 replayed messages, got %d", len(producer.sent))
	}

	topics := map[string]bool{}
	for _, msg := range producer.sent {
		topics[msg.Topic] = true

		if retries, ok := headerValue(msg, kafka.HeaderRetryCount); !ok || retries != "3" {
			t.Fatalf("expected %s header with value 3, got %q", kafka.HeaderRetryCount, retries)
		}
		if origin, ok := headerValue(msg, kafka.HeaderOriginalTopic); !ok || origin == "" {
			t.Fatalf("expected %s header to be set", kafka.HeaderOriginalTopic)
		}

		var envelope replayEnvelope
		if err := json.Unmarshal(msg.Value.(sarama.ByteEncoder), &envelope); err != nil {
			t.Fatalf("replay value must be a valid envelope: %v", err)
		}
		if len(envelope.Payload) == 0 {
			t.Fatalf("envelope %s carries no original payload", envelope.ID)
		}
	}
	if !topics[kafka.TopicOrderEvents] || !topics[kafka.TopicTableEvents] {
		t.Fatalf("expected both aggregate topics, got %v", topics)
	}
}

func TestExtractReplayMessage_TopicRouting(t *testing.T) {
	cases := []struct {
		name          string
		aggregateType string
		wantTopic     string
	}{
		{"order goes to order topic", kafka.AggregateTypeOrder, kafka.TopicOrderEvents},
		{"table goes to table topic", kafka.AggregateTypeTable, kafka.TopicTableEvents},
		{"unknown aggregate falls back", "receipt", "fallback-topic"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value := deadLetterValue(t, "out-9", tc.aggregateType, "9", "whatever", map[string]any{"id": 9})
			msg := &sarama.ConsumerMessage{Topic: kafka.TopicDeadLetterQueue, Value: value}

			got, ok, err := extractReplayMessage(msg, "fallback-topic")
			if err != nil {
				t.Fatalf("extractReplayMessage failed: %v", err)
			}
			if !ok {
				t.Fatal("expected replay candidate")
			}
			if got.topic != tc.wantTopic {
				t.Fatalf("expected topic %s, got %s", tc.wantTopic, got.topic)
			}
			if got.key != "9" {
				t.Fatalf("expected aggregate id as key, got %s", got.key)
			}
		})
	}
}

func TestExtractReplayMessage_ProvenanceHeaders(t *testing.T) {
	msg := &sarama.ConsumerMessage{Topic: kafka.TopicDeadLetterQueue, Value: orderDeadLetter(t, "out-1", "42")}

	got, ok, err := extractReplayMessage(msg, kafka.TopicOrderEvents)
	if err != nil || !ok {
		t.Fatalf("expected replay candidate, ok=%v err=%v", ok, err)
	}

	want := map[string]string{
		kafka.HeaderRetryCount:    "3",
		kafka.HeaderOriginalTopic: kafka.TopicDeadLetterQueue,
		kafka.HeaderErrorMessage:  "kafka: broker not available",
		kafka.HeaderFailedAt:      "2026-02-11T10:00:00Z",
	}
	for _, h := range got.headers {
		expected, known := want[string(h.Key)]
		if !known {
			t.Fatalf("unexpected header %s", h.Key)
		}
		if string(h.Value) != expected {
			t.Fatalf("header %s: expected %q, got %q", h.Key, expected, h.Value)
		}
		delete(want, string(h.Key))
	}
	if len(want) != 0 {
		t.Fatalf("missing headers: %v", want)
	}
}

func TestExtractReplayMessage_BadMessages(t *testing.T) {
	// Не-JSON пропускается молча: в DLQ может лежать чужой мусор.
	_, ok, err := extractReplayMessage(&sarama.ConsumerMessage{Value: []byte("not json at all")}, "fallback")
	if err != nil {
		t.Fatalf("unexpected error for non-json value: %v", err)
	}
	if ok {
		t.Fatal("expected non-json message to be skipped")
	}

	// JSON без исходного события воспроизвести нечем.
	value := []byte(`{"outbox_id":"x","aggregate_type":"order","publish_error":"boom"}`)
	_, ok, err = extractReplayMessage(&sarama.ConsumerMessage{Value: value}, "fallback")
	if err == nil {
		t.Fatal("expected error for dead letter without original payload")
	}
	if ok {
		t.Fatal("expected no replay candidate")
	}
}

func TestProcessPartition_DryRunDoesNotPublish(t *testing.T) {
	client := &fakeOffsetClient{ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}
	consumer := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(&sarama.ConsumerMessage{Partition: 0, Offset: 0, Value: orderDeadLetter(t, "out-1", "42")}),
		},
	}

	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, idleTimeout: 20 * time.Millisecond}

	stats, err := processPartition(context.Background(), consumer, client, nil, cfg, 0, 10)
	if err != nil {
		t.Fatalf("processPartition failed: %v", err)
	}
	if stats.processed != 1 || stats.replayed != 1 || stats.skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(consumer.calls) != 1 || consumer.calls[0].offset != 0 {
		t.Fatalf("unexpected consume calls: %+v", consumer.calls)
	}
}

func TestProcessPartition_SkipsGarbageCountsIt(t *testing.T) {
	client := &fakeOffsetClient{ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}
	consumer := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(&sarama.ConsumerMessage{
				Partition: 0,
				Offset:    0,
				Value:     []byte(`{"outbox_id":"x","aggregate_type":"order"}`),
			}),
		},
	}

	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, execute: true, idleTimeout: 20 * time.Millisecond}

	stats, err := processPartition(context.Background(), consumer, client, &recordingProducer{}, cfg, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error for bad payload: %v", err)
	}
	if stats.skipped != 1 || stats.processed != 1 || stats.replayed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestProcessPartition_Failures(t *testing.T) {
	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, execute: true, idleTimeout: 20 * time.Millisecond}
	client := &fakeOffsetClient{ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}

	t.Run("offset lookup fails", func(t *testing.T) {
		broken := &fakeOffsetClient{offsetErr: map[int32]error{0: errors.New("offset lookup")}}
		if _, err := processPartition(context.Background(), &fakeConsumerSource{}, broken, &recordingProducer{}, cfg, 0, 1); err == nil {
			t.Fatal("expected offset error")
		}
	})

	t.Run("consume fails", func(t *testing.T) {
		source := &fakeConsumerSource{consumeErr: errors.New("consume")}
		if _, err := processPartition(context.Background(), source, client, &recordingProducer{}, cfg, 0, 1); err == nil {
			t.Fatal("expected consume error")
		}
	})

	t.Run("consumer surfaces error", func(t *testing.T) {
		pc := &fakePartitionConsumer{
			messages: make(chan *sarama.ConsumerMessage),
			errors:   make(chan *sarama.ConsumerError, 1),
		}
		pc.errors <- &sarama.ConsumerError{Err: errors.New("consumer boom")}
		close(pc.errors)
		source := &fakeConsumerSource{consumers: map[int32]partitionConsumer{0: pc}}
		if _, err := processPartition(context.Background(), source, client, &recordingProducer{}, cfg, 0, 1); err == nil {
			t.Fatal("expected consumer error")
		}
		close(pc.messages)
	})

	t.Run("publish fails", func(t *testing.T) {
		source := &fakeConsumerSource{
			consumers: map[int32]partitionConsumer{
				0: drainedConsumer(&sarama.ConsumerMessage{Partition: 0, Offset: 0, Value: orderDeadLetter(t, "out-1", "42")}),
			},
		}
		producer := &recordingProducer{sendErr: errors.New("send fail")}
		if _, err := processPartition(context.Background(), source, client, producer, cfg, 0, 1); err == nil {
			t.Fatal("expected publish error")
		}
	})
}

func TestProcessPartition_IdleAndCancel(t *testing.T) {
	client := &fakeOffsetClient{ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}
	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, idleTimeout: 10 * time.Millisecond}

	idle := &fakePartitionConsumer{
		messages: make(chan *sarama.ConsumerMessage),
		errors:   make(chan *sarama.ConsumerError),
	}
	source := &fakeConsumerSource{consumers: map[int32]partitionConsumer{0: idle}}

	stats, err := processPartition(context.Background(), source, client, nil, cfg, 0, 1)
	if err != nil {
		t.Fatalf("idle timeout must end the partition cleanly: %v", err)
	}
	if stats.processed != 0 {
		t.Fatalf("expected nothing processed on idle, got %+v", stats)
	}
	close(idle.messages)
	close(idle.errors)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stuck := &fakePartitionConsumer{
		messages: make(chan *sarama.ConsumerMessage),
		errors:   make(chan *sarama.ConsumerError),
	}
	source = &fakeConsumerSource{consumers: map[int32]partitionConsumer{0: stuck}}
	if _, err := processPartition(ctx, source, client, nil, cfg, 0, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	close(stuck.messages)
	close(stuck.errors)
}

func TestProcessPartition_FromNewestNarrowsWindow(t *testing.T) {
	client := &fakeOffsetClient{ranges: map[int32]offsetRange{0: {oldest: 0, newest: 10}}}
	source := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(),
		},
	}

	cfg := config{
		sourceTopic: kafka.TopicDeadLetterQueue,
		fallback:    kafka.TopicOrderEvents,
		fromNewest:  true,
		idleTimeout: 10 * time.Millisecond,
	}

	if _, err := processPartition(context.Background(), source, client, nil, cfg, 0, 3); err != nil {
		t.Fatalf("processPartition failed: %v", err)
	}
	if len(source.calls) != 1 || source.calls[0].offset != 7 {
		t.Fatalf("expected consume from offset newest-limit=7, got %+v", source.calls)
	}
}

func TestRunReplay_LimitStopsAfterFirstPartition(t *testing.T) {
	client := &fakeOffsetClient{
		partitions: []int32{2, 0},
		ranges: map[int32]offsetRange{
			0: {oldest: 0, newest: 2},
			2: {oldest: 0, newest: 2},
		},
	}
	consumer := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(&sarama.ConsumerMessage{Partition: 0, Offset: 0, Value: orderDeadLetter(t, "out-1", "42")}),
			2: drainedConsumer(&sarama.ConsumerMessage{Partition: 2, Offset: 0, Value: orderDeadLetter(t, "out-2", "43")}),
		},
	}

	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, limit: 1, idleTimeout: 20 * time.Millisecond}

	if err := runReplay(context.Background(), cfg, client, consumer, nil); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}
	if len(consumer.calls) != 1 {
		t.Fatalf("limit=1 must stop after one partition, got %d consume calls", len(consumer.calls))
	}
	if consumer.calls[0].partition != 0 {
		t.Fatalf("partitions must be walked in sorted order, got %d first", consumer.calls[0].partition)
	}
}

func TestRunReplay_DependencyGuards(t *testing.T) {
	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, limit: 1, idleTimeout: 20 * time.Millisecond}

	if err := runReplay(context.Background(), cfg, nil, nil, nil); err == nil {
		t.Fatal("expected error without client and consumer")
	}

	client := &fakeOffsetClient{partitions: []int32{0}, ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}
	consumer := &fakeConsumerSource{consumers: map[int32]partitionConsumer{0: drainedConsumer()}}

	executeCfg := cfg
	executeCfg.execute = true
	if err := runReplay(context.Background(), executeCfg, client, consumer, nil); err == nil {
		t.Fatal("execute mode must require a producer")
	}

	empty := &fakeOffsetClient{partitions: nil}
	if err := runReplay(context.Background(), cfg, empty, consumer, nil); err != nil {
		t.Fatalf("empty topic must not be an error, got %v", err)
	}
}

func TestRun_SwapsAndClosesDependencies(t *testing.T) {
	oldDeps := newReplayDependencies
	defer func() { newReplayDependencies = oldDeps }()

	cfg := config{sourceTopic: kafka.TopicDeadLetterQueue, fallback: kafka.TopicOrderEvents, limit: 1, idleTimeout: 20 * time.Millisecond}

	newReplayDependencies = func(config) (offsetClient, partitionConsumerSource, replayProducer, error) {
		return nil, nil, nil, errors.New("deps failed")
	}
	if err := run(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "deps failed") {
		t.Fatalf("expected deps error, got %v", err)
	}

	client := &fakeOffsetClient{partitions: []int32{0}, ranges: map[int32]offsetRange{0: {oldest: 0, newest: 2}}}
	consumer := &fakeConsumerSource{
		consumers: map[int32]partitionConsumer{
			0: drainedConsumer(&sarama.ConsumerMessage{Partition: 0, Offset: 0, Value: orderDeadLetter(t, "out-1", "42")}),
		},
	}
	producer := &recordingProducer{}

	newReplayDependencies = func(config) (offsetClient, partitionConsumerSource, replayProducer, error) {
		return client, consumer, producer, nil
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !client.closed || !consumer.closed || !producer.closed {
		t.Fatalf("all dependencies must be closed: client=%v consumer=%v producer=%v", client.closed, consumer.closed, producer.closed)
	}
}

func TestReadConfig(t *testing.T) {
	withFlagArgs(t, []string{
		"-brokers=broker-1:9092,broker-2:9092",
		"-source-topic=dinepos.dlq",
		"-fallback-topic=dinepos.order.events",
		"-limit=10",
		"-execute=true",
		"-from-newest=true",
		"-idle-timeout=3s",
	}, func() {
		cfg, err := readConfig()
		if err != nil {
			t.Fatalf("readConfig failed: %v", err)
		}
		if len(cfg.brokers) != 2 {
			t.Fatalf("expected 2 brokers, got %d", len(cfg.brokers))
		}
		if cfg.limit != 10 || !cfg.execute || !cfg.fromNewest {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.idleTimeout != 3*time.Second {
			t.Fatalf("unexpected idle-timeout: %s", cfg.idleTimeout)
		}
	})

	validations := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no brokers", []string{"-brokers="}, "kafka brokers are required"},
		{"no source topic", []string{"-brokers=b:9092", "-source-topic="}, "source-topic is required"},
		{"no fallback topic", []string{"-brokers=b:9092", "-fallback-topic="}, "fallback-topic is required"},
		{"zero limit", []string{"-brokers=b:9092", "-limit=0"}, "limit must be > 0"},
		{"zero idle timeout", []string{"-brokers=b:9092", "-idle-timeout=0s"}, "idle-timeout must be > 0"},
	}
	for _, tc := range validations {
		t.Run(tc.name, func(t *testing.T) {
			withFlagArgs(t, tc.args, func() {
				_, err := readConfig()
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected %q error, got %v", tc.wantErr, err)
				}
			})
		})
	}
}

func TestParseBrokers(t *testing.T) {
	brokers := parseBrokers(" broker-1:9092, ,broker-2:9092 ")
	if len(brokers) != 2 || brokers[0] != "broker-1:9092" || brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %+v", brokers)
	}
}

func TestPublishReplay(t *testing.T) {
	if err := publishReplay(nil, replayMessage{}); err == nil {
		t.Fatal("expected error for nil producer")
	}

	producer := &recordingProducer{}
	msg := replayMessage{
		topic:   "topic",
		key:     "key",
		value:   []byte(`{"x":1}`),
		headers: []sarama.RecordHeader{{Key: []byte(kafka.HeaderRetryCount), Value: []byte("3")}},
	}
	if err := publishReplay(producer, msg); err != nil {
		t.Fatalf("publishReplay failed: %v", err)
	}
	if len(producer.sent) != 1 || producer.sent[0].Topic != "topic" {
		t.Fatalf("unexpected sent messages: %+v", producer.sent)
	}
	if _, ok := headerValue(producer.sent[0], kafka.HeaderRetryCount); !ok {
		t.Fatal("expected headers to be forwarded to the producer message")
	}

	producer.sendErr = errors.New("send failed")
	if err := publishReplay(producer, msg); err == nil {
		t.Fatal("expected publishReplay error")
	}
}

func TestFailExits(t *testing.T) {
	if os.Getenv("DLQ_TEST_FAIL_EXIT") == "1" {
		fail("boom")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFailExits")
	cmd.Env = append(os.Environ(), "DLQ_TEST_FAIL_EXIT=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with error")
	}
	if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() == 0 {
		t.Fatalf("expected non-zero exit code, got %v", err)
	}
}

func withFlagArgs(t *testing.T, args []string, fn func()) {
	t.Helper()

	oldArgs := os.Args
	oldCommandLine := flag.CommandLine

	os.Args = append([]string{"dlq-reprocess"}, args...)
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	defer func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	}()

	fn()
}

type offsetRange struct {
	oldest int64
	newest int64
}

type fakeOffsetClient struct {
	partitions    []int32
	partitionsErr error
	ranges        map[int32]offsetRange
	offsetErr     map[int32]error
	closed        bool
}

func (f *fakeOffsetClient) GetOffset(_ string, partition int32, marker int64) (int64, error) {
	if err, ok := f.offsetErr[partition]; ok {
		return 0, err
	}

	r := f.ranges[partition]
	switch marker {
	case sarama.OffsetOldest:
		return r.oldest, nil
	case sarama.OffsetNewest:
		return r.newest, nil
	default:
		return 0, fmt.Errorf("unsupported offset marker %d", marker)
	}
}

func (f *fakeOffsetClient) Partitions(string) ([]int32, error) {
	if f.partitionsErr != nil {
		return nil, f.partitionsErr
	}
	return append([]int32(nil), f.partitions...), nil
}

func (f *fakeOffsetClient) Close() error {
	f.closed = true
	return nil
}

type consumeCall struct {
	partition int32
	offset    int64
}

type fakeConsumerSource struct {
	consumers  map[int32]partitionConsumer
	consumeErr error
	calls      []consumeCall
	closed     bool
}

func (f *fakeConsumerSource) ConsumePartition(_ string, partition int32, offset int64) (partitionConsumer, error) {
	f.calls = append(f.calls, consumeCall{partition: partition, offset: offset})
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	pc, ok := f.consumers[partition]
	if !ok {
		return nil, fmt.Errorf("partition %d not configured", partition)
	}
	return pc, nil
}

func (f *fakeConsumerSource) Close() error {
	f.closed = true
	return nil
}

type fakePartitionConsumer struct {
	messages chan *sarama.ConsumerMessage
	errors   chan *sarama.ConsumerError
	closed   bool
}

func (f *fakePartitionConsumer) Messages() <-chan *sarama.ConsumerMessage { return f.messages }
func (f *fakePartitionConsumer) Errors() <-chan *sarama.ConsumerError     { return f.errors }
func (f *fakePartitionConsumer) Close() error {
	f.closed = true
	return nil
}

// drainedConsumer отдаёт перечисленные сообщения и сразу закрывает каналы.
func drainedConsumer(messages ...*sarama.ConsumerMessage) *fakePartitionConsumer {
	msgCh := make(chan *sarama.ConsumerMessage, len(messages))
	errCh := make(chan *sarama.ConsumerError)
	for _, msg := range messages {
		msgCh <- msg
	}
	close(msgCh)
	close(errCh)
	return &fakePartitionConsumer{messages: msgCh, errors: errCh}
}

type recordingProducer struct {
	sendErr error
	sent    []*sarama.ProducerMessage
	closed  bool
}

func (r *recordingProducer) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	r.sent = append(r.sent, msg)
	if r.sendErr != nil {
		return 0, 0, r.sendErr
	}
	return 0, int64(len(r.sent)), nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const topicCreateTimeout = 30 * time.Second

// EnsureTopics 는 import 이벤트 토픽과 그 DLQ 를 만든다. 이미 있으면 성공으로 본다.
// DLQ 는 순서 보존을 위해 파티션 하나로 둔다.
func EnsureTopics(ctx context.Context, brokers string, topic Topic, partitions int) error {
	if partitions <= 0 {
		partitions = 1
	}

	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return fmt.Errorf("kafka admin client 생성 실패: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(ctx, topicCreateTimeout)
	defer cancel()

	results, err := admin.CreateTopics(ctx, []kafka.TopicSpecification{
		{Topic: topic.Base(), NumPartitions: partitions, ReplicationFactor: 1},
		{Topic: topic.DLQ(), NumPartitions: 1, ReplicationFactor: 1},
	}, kafka.SetAdminOperationTimeout(topicCreateTimeout))
	if err != nil {
		return fmt.Errorf("토픽 생성 요청 실패: %w", err)
	}

	for _, r := range results {
		switch r.Error.Code() {
		case kafka.ErrNoError, kafka.ErrTopicAlreadyExists:
		default:
			return fmt.Errorf("토픽 %s 생성 실패: %w", r.Topic, r.Error)
		}
	}
	return nil
}

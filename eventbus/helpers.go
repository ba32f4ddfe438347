package eventbus

import (
	"context"
	"errors"
	"fmt"
)

// PublishWithDLQ는 기본 토픽으로 발행하고, broker 가 전달 실패를 보고하면 마지막 오류를 담아
// DLQ 토픽으로 한 번 더 발행합니다. 전달 여부가 확인되지 않은 경우에는 DLQ 로 보내지 않습니다.
func PublishWithDLQ(ctx context.Context, bus EventBus, topic Topic, evt Event) error {
	err := bus.Publish(ctx, topic.Base(), evt)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDeliveryUnconfirmed) {
		return err
	}
	evt.LastError = err.Error()
	if dlqErr := bus.Publish(ctx, topic.DLQ(), evt); dlqErr != nil {
		return fmt.Errorf("DLQ %s 발행 실패: %w (원인: %v)", topic.DLQ(), dlqErr, err)
	}
	return fmt.Errorf("토픽 %s 발행 실패, DLQ로 전송: %w", topic.Base(), err)
}

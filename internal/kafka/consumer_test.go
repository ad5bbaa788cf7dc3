package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScanEvent(t *testing.T) {
	ev, err := DecodeScanEvent(Message{Value: []byte(`{"id":"01H","phone":" (11) 91234-5678 ","origem":"palestra"}`)})
	require.NoError(t, err)
	assert.Equal(t, "01H", ev.ID)
	assert.Equal(t, "(11) 91234-5678", ev.Phone)
	assert.Equal(t, "palestra", ev.Origem)
}

func TestDecodeScanEvent_OrigemFromKey(t *testing.T) {
	ev, err := DecodeScanEvent(Message{Key: []byte("scanner-3"), Value: []byte(`{"phone":"11912345678"}`)})
	require.NoError(t, err)
	assert.Equal(t, "scanner-3", ev.Origem)
}

func TestDecodeScanEvent_Invalid(t *testing.T) {
	_, err := DecodeScanEvent(Message{Value: []byte(`not json`)})
	assert.Error(t, err)

	_, err = DecodeScanEvent(Message{Value: []byte(`{"origem":"stand"}`)})
	assert.Error(t, err)
}

func TestNewConsumer_Validation(t *testing.T) {
	_, err := NewConsumer(Config{Topic: "t"})
	assert.ErrorIs(t, err, ErrNoBrokers)

	_, err = NewConsumer(Config{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)
}

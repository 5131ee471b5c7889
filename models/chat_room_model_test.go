package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatRoomParticipants(t *testing.T) {
	student := uuid.New()
	teacher := uuid.New()
	outsider := uuid.New()
	room := ChatRoom{StudentID: student, TeacherID: teacher}

	assert.True(t, room.HasParticipant(student))
	assert.True(t, room.HasParticipant(teacher))
	assert.False(t, room.HasParticipant(outsider))

	assert.Equal(t, teacher, room.CounterpartOf(student))
	assert.Equal(t, student, room.CounterpartOf(teacher))
}

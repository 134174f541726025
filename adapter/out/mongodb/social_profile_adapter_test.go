package mongodb

import (
	"testing"

	"social_server/core/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUpdateFields(t *testing.T) {
	tests := []struct {
		name string
		upd  *domain.ProfileUpdate
		want bson.M
	}{
		{
			name: "only social when everything is empty",
			upd:  &domain.ProfileUpdate{},
			want: bson.M{"social": domain.Social{}},
		},
		{
			name: "non-empty scalars and skills",
			upd: &domain.ProfileUpdate{
				Status:         "Developer",
				Company:        "Acme",
				GitHubUsername: "jane",
				Skills:         []string{"go"},
				Social:         domain.Social{Twitter: "t"},
			},
			want: bson.M{
				"status":         "Developer",
				"company":        "Acme",
				"githubusername": "jane",
				"skills":         []string{"go"},
				"social":         domain.Social{Twitter: "t"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, updateFields(tt.upd))
		})
	}
}

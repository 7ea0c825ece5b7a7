//go:build unit

package validation_test

import (
	"testing"

	"hotel-booking/internal/handler/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Amount int64    `binding:"vnd"`
	Rooms  []string `binding:"roomcount"`
	Code   string   `binding:"discountcode"`
}

func TestCustomTags(t *testing.T) {
	validation.Register()

	valid := func() sample {
		return sample{Amount: 1_800_000, Rooms: []string{"101"}, Code: "SUMMER10"}
	}

	tests := []struct {
		name    string
		mutate  func(s *sample)
		wantErr bool
	}{
		{name: "正常値", mutate: func(s *sample) {}},
		{name: "金額ゼロは許可", mutate: func(s *sample) { s.Amount = 0 }},
		{name: "負の金額", mutate: func(s *sample) { s.Amount = -1 }, wantErr: true},
		{name: "上限超過の金額", mutate: func(s *sample) { s.Amount = validation.MaxOrderAmount + 1 }, wantErr: true},
		{name: "部屋なし", mutate: func(s *sample) { s.Rooms = nil }, wantErr: true},
		{name: "部屋数上限", mutate: func(s *sample) { s.Rooms = make([]string, 10) }},
		{name: "部屋数超過", mutate: func(s *sample) { s.Rooms = make([]string, 11) }, wantErr: true},
		{name: "小文字コードは正規化される", mutate: func(s *sample) { s.Code = "summer10" }},
		{name: "短すぎるコード", mutate: func(s *sample) { s.Code = "AB" }, wantErr: true},
		{name: "記号を含むコード", mutate: func(s *sample) { s.Code = "SALE!" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := binding.Validator.ValidateStruct(&s)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

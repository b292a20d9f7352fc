package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "01HQX",
			paramsKey:   nil,
			expectedKey: "studyquiz:session:state:01HQX",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "session",
			objectType:  "state",
			identifier:  "01HQX",
			paramsKey:   []string{},
			expectedKey: "studyquiz:session:state:01HQX",
		},
		{
			name:        "with one paramsKey",
			serviceName: "content",
			objectType:  "textbooks",
			identifier:  "subject",
			paramsKey:   []string{"英語"},
			expectedKey: "studyquiz:content:textbooks:subject:英語",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "content",
			objectType:  "chapters",
			identifier:  "book",
			paramsKey:   []string{"eng-01", "v2"},
			expectedKey: "studyquiz:content:chapters:book:eng-01_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

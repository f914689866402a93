package testutils

import "os"

// SavedEnv 记录环境变量被修改前的状态
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv 设置环境变量并返回之前的状态
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// SetEnvs 批量设置，常用于 TestMain
func SetEnvs(values map[string]string) []SavedEnv {
	saved := make([]SavedEnv, 0, len(values))
	for k, v := range values {
		saved = append(saved, SetEnv(k, v))
	}
	return saved
}

// RestoreEnv 恢复到保存时的状态
func RestoreEnv(envs []SavedEnv) {
	for _, env := range envs {
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}

package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// セッションの有効期限（30日）
const TTL = 30 * 24 * time.Hour

var (
	//署名不正・形式不正
	ErrInvalid = errors.New("invalid session")
	//期限切れ
	ErrExpired = errors.New("session expired")
)

// 検証済みセッションの中身
type Session struct {
	Username  string
	Name      string
	Role      model.Role
	ExpiresAt time.Time
}

// ファイルに書く内容。tokenは署名済みなので中身の改ざんはValidateで弾ける。
type fileRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore はプロセス再起動をまたいでログイン状態を保持する。
// DBではなくローカルファイルに署名付きtokenを置く。
type FileStore struct {
	path   string
	secret []byte
}

func NewFileStore(path string, secret []byte) *FileStore {
	return &FileStore{path: path, secret: secret}
}

// Issue は署名付きセッショントークンを発行する。
func (s *FileStore) Issue(username string, name string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(TTL)

	claims := jwt.MapClaims{
		"sub":  username,
		"name": name,
		"role": string(role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate は署名と期限を検証してセッション内容を返す。
// DBは見ない純粋な検証。ユーザーの現在のstatus/roleの再確認は呼び出し側が行う。
func (s *FileStore) Validate(token string, now time.Time) (Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || parsed == nil || !parsed.Valid {
		return Session{}, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalid
	}

	username, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	roleStr, _ := claims["role"].(string)
	expF, okExp := claims["exp"].(float64)
	if username == "" || roleStr == "" || !okExp {
		return Session{}, ErrInvalid
	}

	expiresAt := time.Unix(int64(expF), 0)
	if now.After(expiresAt) {
		return Session{}, ErrExpired
	}

	return Session{
		Username:  username,
		Name:      name,
		Role:      model.Role(roleStr),
		ExpiresAt: expiresAt,
	}, nil
}

// Save はtokenをローカルファイルへ保存する（auto-login用）。
func (s *FileStore) Save(token string, expiresAt time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(fileRecord{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Load は保存済みのセッションを読み込む。
// 期限切れなら削除して ErrExpired を返す。ファイルが無ければ ErrInvalid。
func (s *FileStore) Load(now time.Time) (Session, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, "", ErrInvalid
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = s.Clear()
		return Session{}, "", ErrInvalid
	}

	sess, err := s.Validate(rec.Token, now)
	if errors.Is(err, ErrExpired) {
		_ = s.Clear()
		return Session{}, "", ErrExpired
	}
	if err != nil {
		_ = s.Clear()
		return Session{}, "", ErrInvalid
	}

	return sess, rec.Token, nil
}

// Clear はセッションファイルを削除する（logout）。
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

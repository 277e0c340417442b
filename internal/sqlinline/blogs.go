package sqlinline

const QInsertBlog = `--sql 66a80a91-67c5-4312-ab1e-8f9f303ddd37
insert into blogs (id, title, thumbnail, content, status, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, 'draft', now())
returning id;
`

const QListBlogs = `--sql 599c94f3-2f8e-466b-828b-17273862c087
select id, title, thumbnail, content, status, created_at
from blogs
where ($1::text = '' or status = $1::text)
order by created_at desc, id;
`

const QSetBlogStatus = `--sql 5532d639-f26c-4e76-bea0-6a236440fc2a
update blogs
set status = $2::text
where id = $1::uuid
returning id;
`

const QDeleteBlog = `--sql 29e0a9f1-c4b0-46c5-aec2-18462e5fe088
delete from blogs
where id = $1::uuid
returning id;
`
